package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	workshopRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/workshop"
)

// UseCase use case получения слотов мастер-класса со свободными местами
type UseCase struct {
	workshopRepo WorkshopRepository
	slotRepo     SlotRepository
	ledger       CapacityLedger
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	workshopRepo WorkshopRepository,
	slotRepo SlotRepository,
	ledger CapacityLedger,
	logger Logger,
) *UseCase {
	return &UseCase{
		workshopRepo: workshopRepo,
		slotRepo:     slotRepo,
		ledger:       ledger,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов.
// Занятость считается одним пакетным запросом на все слоты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: workshop=%s, from=%s, to=%s",
		req.WorkshopID, formatDate(req.DateFrom), formatDate(req.DateTo))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем мастер-класс
	workshop, err := uc.workshopRepo.GetByID(ctx, req.WorkshopID)
	if err != nil {
		if errors.Is(err, workshopRepo.ErrWorkshopNotFound) {
			uc.logger.Warn("GetAvailableSlots: workshop id=%s not found", req.WorkshopID)
			return nil, ErrWorkshopNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get workshop id=%s: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: failed to get workshop: %v", ErrInternal, err)
	}

	// 3. Слоты в диапазоне дат
	slots, err := uc.slotRepo.List(ctx, domain.SlotFilter{
		WorkshopID: &workshop.ID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots for workshop id=%s: %v", workshop.ID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 4. Занятость
	availability, err := uc.ledger.ForSlots(ctx, slots)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute availability: %v", err)
		return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
	}

	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		a := availability[s.ID]
		duration := s.DurationMinutes
		if duration <= 0 {
			duration = workshop.DurationMinutes
		}
		result = append(result, Slot{
			ID:              s.ID,
			WorkshopID:      s.WorkshopID,
			Date:            s.Date,
			Time:            s.Time,
			StartAt:         s.StartAt(),
			DurationMinutes: duration,
			CapacityTotal:   a.Capacity,
			CapacityBooked:  a.BookedSeats,
			HeldSeats:       a.HeldSeats,
			FreeSeats:       a.FreeSeats,
			Status:          string(s.Status),
		})
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for workshop=%s", len(result), workshop.ID)

	return &Response{
		WorkshopID: workshop.ID,
		Slots:      result,
	}, nil
}
