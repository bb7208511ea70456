package seatholds

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// SeatHoldRepository интерфейс репозитория удержаний
type SeatHoldRepository interface {
	Create(ctx context.Context, hold *domain.SeatHold) (*domain.SeatHold, error)
	ReleaseByBookingID(ctx context.Context, bookingID string) (int64, error)
}

// Metrics счётчики удержаний
type Metrics interface {
	RecordHoldRelease()
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
