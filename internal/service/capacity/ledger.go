package capacity

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Ledger считает занятость слотов по подтверждённым бронированиям
// и активным удержаниям. Состояния не хранит.
//
// Чтения идут через исполнитель из контекста: внутри транзакции
// учитываются её собственные незафиксированные записи.
type Ledger struct {
	bookingRepo  BookingRepository
	holdRepo     SeatHoldRepository
	timeProvider TimeProvider
}

// NewLedger создает новый экземпляр ledger
func NewLedger(bookingRepo BookingRepository, holdRepo SeatHoldRepository) *Ledger {
	return &Ledger{
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		timeProvider: &RealTimeProvider{},
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (l *Ledger) WithTimeProvider(tp TimeProvider) *Ledger {
	l.timeProvider = tp
	return l
}

// ForSlot занятость одного слота
func (l *Ledger) ForSlot(ctx context.Context, slot *domain.Slot) (domain.SlotAvailability, error) {
	result, err := l.ForSlots(ctx, []*domain.Slot{slot})
	if err != nil {
		return domain.SlotAvailability{}, err
	}
	return result[slot.ID], nil
}

// ForSlots занятость набора слотов двумя сгруппированными запросами.
// Для каждого переданного слота в результате есть запись.
func (l *Ledger) ForSlots(ctx context.Context, slots []*domain.Slot) (map[string]domain.SlotAvailability, error) {
	result := make(map[string]domain.SlotAvailability, len(slots))
	if len(slots) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}

	booked, err := l.bookingRepo.SumConfirmedBySlotIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: ForSlots - sum confirmed: %v", ErrInternal, err)
	}

	held, err := l.holdRepo.SumActiveBySlotIDs(ctx, ids, l.timeProvider.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: ForSlots - sum held: %v", ErrInternal, err)
	}

	for _, s := range slots {
		result[s.ID] = domain.ComputeAvailability(s.ID, s.Capacity, booked[s.ID], held[s.ID])
	}

	return result, nil
}
