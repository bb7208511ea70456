package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/slot"
)

// SlotRepository слоты в памяти
type SlotRepository struct {
	s *Store
}

// findByKey вызывается под s.mu
func (r *SlotRepository) findByKey(key domain.SlotKey) (domain.Slot, bool) {
	for _, slot := range r.s.slots {
		if slot.WorkshopID == key.WorkshopID && slot.Date.Equal(key.Date) && slot.Time == key.Time {
			return slot, true
		}
	}
	return domain.Slot{}, false
}

func (r *SlotRepository) InsertIfAbsent(_ context.Context, slot *domain.Slot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workshops[slot.WorkshopID]; !ok {
		return slotRepo.ErrWorkshopNotFound
	}
	if _, ok := r.findByKey(slot.Key()); ok {
		return nil
	}
	slot.CreatedAt = r.s.tick()
	slot.UpdatedAt = slot.CreatedAt
	r.s.slots[slot.ID] = *slot
	return nil
}

func (r *SlotRepository) Upsert(_ context.Context, slot *domain.Slot, keepDuration bool) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workshops[slot.WorkshopID]; !ok {
		return nil, slotRepo.ErrWorkshopNotFound
	}

	existing, ok := r.findByKey(slot.Key())
	if !ok {
		saved := *slot
		saved.CreatedAt = r.s.tick()
		saved.UpdatedAt = saved.CreatedAt
		r.s.slots[saved.ID] = saved
		return &saved, nil
	}

	existing.Capacity = slot.Capacity
	existing.Status = slot.Status
	if !keepDuration {
		existing.DurationMinutes = slot.DurationMinutes
	}
	existing.UpdatedAt = r.s.tick()
	r.s.slots[existing.ID] = existing
	return &existing, nil
}

func (r *SlotRepository) GetByID(_ context.Context, id string) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *SlotRepository) GetByKey(_ context.Context, key domain.SlotKey) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.findByKey(key)
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *SlotRepository) List(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Slot, 0)
	for _, slot := range r.s.slots {
		if filter.WorkshopID != nil && slot.WorkshopID != *filter.WorkshopID {
			continue
		}
		if !inRange(slot.Date, filter.DateFrom, filter.DateTo) {
			continue
		}
		slot := slot
		result = append(result, &slot)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (r *SlotRepository) Update(_ context.Context, slot *domain.Slot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.slots[slot.ID]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	slot.UpdatedAt = r.s.tick()
	r.s.slots[slot.ID] = *slot
	return nil
}

func (r *SlotRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(r.s.slots, id)
	return nil
}
