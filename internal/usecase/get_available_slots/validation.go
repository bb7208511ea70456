package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.WorkshopID) == "" {
		return fmt.Errorf("%w: workshopId is required", ErrInvalidInput)
	}

	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		return fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}

	return nil
}

func formatDate(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return d.Format(domain.DateFormat)
}
