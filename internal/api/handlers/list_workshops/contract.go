package list_workshops

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/service/workshops/models"
)

type WorkshopService interface {
	ListActive(ctx context.Context) ([]models.WorkshopResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
