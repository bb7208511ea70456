package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
)

// WorkshopRepository интерфейс репозитория мастер-классов
type WorkshopRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Workshop, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	InsertIfAbsent(ctx context.Context, slot *domain.Slot) error
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CapacityLedger расчёт свободных мест слота
type CapacityLedger interface {
	ForSlot(ctx context.Context, slot *domain.Slot) (domain.SlotAvailability, error)
}

// HoldManager удержание мест под заявки сверх вместимости
type HoldManager interface {
	PlaceOverflowHold(ctx context.Context, booking *domain.Booking) (*domain.SeatHold, error)
}

// Notifier уведомления после фиксации бронирования
type Notifier interface {
	BookingAdmitted(ctx context.Context, event notifications.BookingEvent)
}

// Metrics счётчики решений о допуске
type Metrics interface {
	RecordAdmission(status string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
