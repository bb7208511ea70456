package capacity

import (
	"context"
	"time"
)

// BookingRepository источник суммы подтверждённых мест
type BookingRepository interface {
	SumConfirmedBySlotIDs(ctx context.Context, slotIDs []string) (map[string]int, error)
}

// SeatHoldRepository источник суммы удержанных мест
type SeatHoldRepository interface {
	SumActiveBySlotIDs(ctx context.Context, slotIDs []string, now time.Time) (map[string]int, error)
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
