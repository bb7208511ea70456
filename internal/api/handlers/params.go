package handlers

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// ParseDateQuery читает необязательный query-параметр даты YYYY-MM-DD.
// Отсутствующий параметр даёт nil без ошибки.
func ParseDateQuery(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// OptionalQuery возвращает указатель на непустой query-параметр
func OptionalQuery(r *http.Request, name string) *string {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	return &v
}
