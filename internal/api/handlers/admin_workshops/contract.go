package admin_workshops

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/service/workshops/models"
)

type WorkshopService interface {
	ListAll(ctx context.Context) ([]models.WorkshopResponse, error)
	Create(ctx context.Context, req *models.CreateWorkshopRequest) (*models.WorkshopResponse, error)
	Update(ctx context.Context, id string, req *models.UpdateWorkshopRequest) (*models.WorkshopResponse, error)
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
