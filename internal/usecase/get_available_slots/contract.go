package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// WorkshopRepository интерфейс репозитория мастер-классов
type WorkshopRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Workshop, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
}

// CapacityLedger расчёт занятости набора слотов
type CapacityLedger interface {
	ForSlots(ctx context.Context, slots []*domain.Slot) (map[string]domain.SlotAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
