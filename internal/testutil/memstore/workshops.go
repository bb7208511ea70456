package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	workshopRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/workshop"
)

// WorkshopRepository мастер-классы в памяти
type WorkshopRepository struct {
	s *Store
}

func (r *WorkshopRepository) Create(_ context.Context, w *domain.Workshop) (*domain.Workshop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w.CreatedAt = r.s.tick()
	w.UpdatedAt = w.CreatedAt
	r.s.workshops[w.ID] = *w
	return w, nil
}

func (r *WorkshopRepository) GetByID(_ context.Context, id string) (*domain.Workshop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.workshops[id]
	if !ok {
		return nil, workshopRepo.ErrWorkshopNotFound
	}
	return &w, nil
}

func (r *WorkshopRepository) List(_ context.Context, onlyActive bool) ([]*domain.Workshop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Workshop, 0, len(r.s.workshops))
	for _, w := range r.s.workshops {
		if onlyActive && !w.IsActive {
			continue
		}
		w := w
		result = append(result, &w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (r *WorkshopRepository) Update(_ context.Context, w *domain.Workshop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workshops[w.ID]; !ok {
		return workshopRepo.ErrWorkshopNotFound
	}
	w.UpdatedAt = r.s.tick()
	r.s.workshops[w.ID] = *w
	return nil
}

func (r *WorkshopRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workshops[id]; !ok {
		return workshopRepo.ErrWorkshopNotFound
	}
	for _, slot := range r.s.slots {
		if slot.WorkshopID == id {
			return workshopRepo.ErrWorkshopInUse
		}
	}
	delete(r.s.workshops, id)
	return nil
}
