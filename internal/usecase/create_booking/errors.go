package create_booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSpamDetected возвращается, когда заполнено скрытое поле формы
	ErrSpamDetected = errors.New("create_booking: honeypot field is filled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrWorkshopNotFound возвращается, когда мастер-класс не найден
	ErrWorkshopNotFound = errors.New("create_booking: workshop not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotUnavailable возвращается, когда слот заморожен администратором
	ErrSlotUnavailable = errors.New("create_booking: slot is not available for booking")

	// ErrSlotCancelled возвращается, когда слот отменён
	ErrSlotCancelled = errors.New("create_booking: slot is cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError ошибки валидации по полям запроса
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%v: %s", ErrInvalidInput, strings.Join(parts, ", "))
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrInvalidInput)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
