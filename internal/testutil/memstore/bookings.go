package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	s *Store
}

func (r *BookingRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b.CreatedAt = r.s.tick()
	b.UpdatedAt = b.CreatedAt
	r.s.bookings[b.ID] = *b
	return b, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if filter.WorkshopID != nil && b.WorkshopID != *filter.WorkshopID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		slot, ok := r.s.slots[b.SlotID]
		if !ok || !inRange(slot.Date, filter.DateFrom, filter.DateTo) {
			continue
		}
		b := b
		result = append(result, &b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = r.s.tick()
	r.s.bookings[id] = b
	return nil
}

func (r *BookingRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.s.bookings, id)
	for holdID, h := range r.s.holds {
		if h.BookingID != nil && *h.BookingID == id {
			h.BookingID = nil
			r.s.holds[holdID] = h
		}
	}
	return nil
}

func (r *BookingRepository) DeleteBySlotID(_ context.Context, slotID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for id, b := range r.s.bookings {
		if b.SlotID == slotID {
			delete(r.s.bookings, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *BookingRepository) SumConfirmedBySlotIDs(_ context.Context, slotIDs []string) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[string]int)
	for _, b := range r.s.bookings {
		if b.OccupiesSeats() && contains(slotIDs, b.SlotID) {
			result[b.SlotID] += b.Participants
		}
	}
	return result, nil
}
