package memstore

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	seatholdRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/seathold"
)

// SeatHoldRepository удержания в памяти
type SeatHoldRepository struct {
	s *Store
}

func (r *SeatHoldRepository) Create(_ context.Context, h *domain.SeatHold) (*domain.SeatHold, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h.CreatedAt = r.s.tick()
	h.UpdatedAt = h.CreatedAt
	r.s.holds[h.ID] = *h
	return h, nil
}

// findByBooking вызывается под s.mu
func (r *SeatHoldRepository) findByBooking(bookingID string) (domain.SeatHold, bool) {
	for _, h := range r.s.holds {
		if h.BookingID != nil && *h.BookingID == bookingID {
			return h, true
		}
	}
	return domain.SeatHold{}, false
}

func (r *SeatHoldRepository) GetByBookingID(_ context.Context, bookingID string) (*domain.SeatHold, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.findByBooking(bookingID)
	if !ok {
		return nil, seatholdRepo.ErrHoldNotFound
	}
	return &h, nil
}

func (r *SeatHoldRepository) ListByBookingIDs(_ context.Context, bookingIDs []string) (map[string]*domain.SeatHold, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[string]*domain.SeatHold)
	for _, h := range r.s.holds {
		if h.BookingID != nil && contains(bookingIDs, *h.BookingID) {
			h := h
			result[*h.BookingID] = &h
		}
	}
	return result, nil
}

func (r *SeatHoldRepository) ReleaseByBookingID(_ context.Context, bookingID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.findByBooking(bookingID)
	if !ok || h.Status != domain.HoldActive {
		return 0, nil
	}
	h.Status = domain.HoldReleased
	h.UpdatedAt = r.s.tick()
	r.s.holds[h.ID] = h
	return 1, nil
}

func (r *SeatHoldRepository) DeleteBySlotID(_ context.Context, slotID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for id, h := range r.s.holds {
		if h.SlotID == slotID {
			delete(r.s.holds, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *SeatHoldRepository) SumActiveBySlotIDs(_ context.Context, slotIDs []string, now time.Time) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[string]int)
	for _, h := range r.s.holds {
		if h.CountsAt(now) && contains(slotIDs, h.SlotID) {
			result[h.SlotID] += h.ParticipantsHeld
		}
	}
	return result, nil
}
