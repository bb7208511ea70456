package slots

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Upsert(ctx context.Context, slot *domain.Slot, keepDuration bool) (*domain.Slot, error)
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	Update(ctx context.Context, slot *domain.Slot) error
	Delete(ctx context.Context, id string) error
}

// WorkshopRepository интерфейс репозитория мастер-классов
type WorkshopRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Workshop, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Workshop, error)
}

// BookingRepository каскадное удаление бронирований слота
type BookingRepository interface {
	DeleteBySlotID(ctx context.Context, slotID string) (int64, error)
}

// SeatHoldRepository каскадное удаление удержаний слота
type SeatHoldRepository interface {
	DeleteBySlotID(ctx context.Context, slotID string) (int64, error)
}

// CapacityLedger расчёт занятости
type CapacityLedger interface {
	ForSlot(ctx context.Context, slot *domain.Slot) (domain.SlotAvailability, error)
	ForSlots(ctx context.Context, slots []*domain.Slot) (map[string]domain.SlotAvailability, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
