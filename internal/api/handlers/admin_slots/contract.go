package admin_slots

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/service/slots/models"
)

type SlotService interface {
	List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error)
	Upsert(ctx context.Context, req *models.UpsertSlotRequest) (*models.SlotResponse, error)
	Update(ctx context.Context, id string, req *models.UpdateSlotRequest) (*models.SlotResponse, error)
	Hold(ctx context.Context, id string) (*models.SlotResponse, error)
	Unhold(ctx context.Context, id string) (*models.SlotResponse, error)
	Cancel(ctx context.Context, id string) (*models.SlotResponse, error)
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
