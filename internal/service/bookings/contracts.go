package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Delete(ctx context.Context, id string) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
}

// SeatHoldRepository интерфейс репозитория удержаний (только чтение)
type SeatHoldRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.SeatHold, error)
	ListByBookingIDs(ctx context.Context, bookingIDs []string) (map[string]*domain.SeatHold, error)
}

// HoldManager снятие удержаний
type HoldManager interface {
	ReleaseForBooking(ctx context.Context, bookingID string) (bool, error)
}

// CapacityLedger расчёт занятости слота
type CapacityLedger interface {
	ForSlot(ctx context.Context, slot *domain.Slot) (domain.SlotAvailability, error)
}

// Notifier уведомления о решениях администратора
type Notifier interface {
	BookingStatusChanged(ctx context.Context, event notifications.BookingEvent)
}

// Metrics счётчик подтверждений сверх вместимости
type Metrics interface {
	RecordOversubscribed()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
