package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/slot"
	workshopRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-StudioBooking/internal/service/slots/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Service сервис администрирования слотов
type Service struct {
	slotRepo     SlotRepository
	workshopRepo WorkshopRepository
	bookingRepo  BookingRepository
	holdRepo     SeatHoldRepository
	ledger       CapacityLedger
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	workshopRepo WorkshopRepository,
	bookingRepo BookingRepository,
	holdRepo SeatHoldRepository,
	ledger CapacityLedger,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		workshopRepo: workshopRepo,
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		ledger:       ledger,
		txManager:    txManager,
		logger:       logger,
	}
}

// List возвращает слоты по фильтру с занятостью и названием мастер-класса
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("List: fetching slots workshop=%v", req.WorkshopID)

	list, err := s.slotRepo.List(ctx, domain.SlotFilter{
		WorkshopID: req.WorkshopID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - slots: %v", ErrInternal, err)
	}

	availability, err := s.ledger.ForSlots(ctx, list)
	if err != nil {
		s.logger.Error("List: failed to compute availability: %v", err)
		return nil, fmt.Errorf("%w: List - availability: %v", ErrInternal, err)
	}

	workshops, err := s.workshopRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("List: failed to list workshops: %v", err)
		return nil, fmt.Errorf("%w: List - workshops: %v", ErrInternal, err)
	}
	titles := make(map[string]string, len(workshops))
	for _, w := range workshops {
		titles[w.ID] = w.Title
	}

	result := &models.SlotListResponse{Slots: make([]models.SlotResponse, 0, len(list))}
	for _, slot := range list {
		result.Slots = append(result.Slots, models.FromDomainSlot(slot, availability[slot.ID], titles[slot.WorkshopID]))
	}

	s.logger.Info("List: successfully fetched %d slots", len(result.Slots))
	return result, nil
}

// Upsert создаёт слот или обновляет существующий с тем же ключом.
// Без явных значений вместимость и длительность берутся из мастер-класса;
// длительность существующего слота без явного значения не меняется.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Upsert: workshop=%s date=%s time=%s", req.WorkshopID, req.Date, req.Time)

	date, t, err := validateUpsert(req)
	if err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	workshop, err := s.workshopRepo.GetByID(ctx, req.WorkshopID)
	if err != nil {
		if errors.Is(err, workshopRepo.ErrWorkshopNotFound) {
			s.logger.Warn("Upsert: workshop id=%s not found", req.WorkshopID)
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("Upsert: failed to get workshop id=%s: %v", req.WorkshopID, err)
		return nil, fmt.Errorf("%w: Upsert - get workshop: %v", ErrInternal, err)
	}

	slot := domain.NewSlotForWorkshop(uuid.NewString(), workshop, date, t)
	slot.Status = req.DesiredStatus()
	if req.Capacity != nil {
		slot.Capacity = domain.ClampMin(*req.Capacity, domain.MinCapacity)
	}
	if req.DurationMinutes != nil {
		slot.DurationMinutes = domain.ClampMin(*req.DurationMinutes, domain.MinDurationMinutes)
	}

	saved, err := s.slotRepo.Upsert(ctx, slot, req.DurationMinutes == nil)
	if err != nil {
		if errors.Is(err, slotRepo.ErrWorkshopNotFound) {
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: slot id=%s status=%s capacity=%d", saved.ID, saved.Status, saved.Capacity)
	return s.respond(ctx, saved, workshop.Title)
}

// Update частично обновляет слот
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: slot id=%s", id)

	var status *domain.SlotStatus
	if req.Status != nil {
		parsed, err := domain.ParseSlotStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status %q for slot id=%s", *req.Status, id)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = &parsed
	}

	return s.mutate(ctx, "Update", id, func(slot *domain.Slot) (bool, error) {
		changed := false
		if status != nil {
			c, err := slot.SetStatus(*status)
			if err != nil {
				return false, err
			}
			changed = changed || c
		}
		if req.Capacity != nil {
			slot.Capacity = domain.ClampMin(*req.Capacity, domain.MinCapacity)
			changed = true
		}
		if req.DurationMinutes != nil {
			slot.DurationMinutes = domain.ClampMin(*req.DurationMinutes, domain.MinDurationMinutes)
			changed = true
		}
		return changed, nil
	})
}

// Hold замораживает слот: новые заявки в него не принимаются
func (s *Service) Hold(ctx context.Context, id string) (*models.SlotResponse, error) {
	return s.mutate(ctx, "Hold", id, func(slot *domain.Slot) (bool, error) {
		return slot.Hold()
	})
}

// Unhold размораживает слот
func (s *Service) Unhold(ctx context.Context, id string) (*models.SlotResponse, error) {
	return s.mutate(ctx, "Unhold", id, func(slot *domain.Slot) (bool, error) {
		return slot.Unhold()
	})
}

// Cancel отменяет слот. Бронирования слота не меняются.
func (s *Service) Cancel(ctx context.Context, id string) (*models.SlotResponse, error) {
	return s.mutate(ctx, "Cancel", id, func(slot *domain.Slot) (bool, error) {
		return slot.Cancel(), nil
	})
}

// Delete удаляет слот вместе с его бронированиями и удержаниями
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: slot id=%s", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getSlot(txCtx, "Delete", id); err != nil {
			return err
		}

		holds, err := s.holdRepo.DeleteBySlotID(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - seat holds: %v", ErrInternal, err)
		}

		bookings, err := s.bookingRepo.DeleteBySlotID(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - bookings: %v", ErrInternal, err)
		}

		if err := s.slotRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Delete - slot: %v", ErrInternal, err)
		}

		s.logger.Info("Delete: slot id=%s removed with %d bookings and %d seat holds", id, bookings, holds)
		return nil
	})
	if err != nil {
		s.logger.Warn("Delete: slot id=%s: %v", id, err)
		return err
	}

	return nil
}

// mutate читает слот с блокировкой, применяет fn и сохраняет при изменении
func (s *Service) mutate(ctx context.Context, method, id string, fn func(slot *domain.Slot) (bool, error)) (*models.SlotResponse, error) {
	var slot *domain.Slot

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		slot, err = s.getSlot(txCtx, method, id)
		if err != nil {
			return err
		}

		changed, err := fn(slot)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				s.logger.Warn("%s: slot id=%s in status %s: %v", method, id, slot.Status, err)
				return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
			}
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if !changed {
			return nil
		}

		if err := s.slotRepo.Update(txCtx, slot); err != nil {
			s.logger.Error("%s: failed to update slot id=%s: %v", method, id, err)
			return fmt.Errorf("%w: %s - update: %v", ErrInternal, method, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: slot id=%s status=%s", method, id, slot.Status)

	title := ""
	if w, err := s.workshopRepo.GetByID(ctx, slot.WorkshopID); err == nil {
		title = w.Title
	}
	return s.respond(ctx, slot, title)
}

func (s *Service) getSlot(ctx context.Context, method, id string) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%s not found", method, id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: failed to get slot id=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - get slot: %v", ErrInternal, method, err)
	}
	return slot, nil
}

func (s *Service) respond(ctx context.Context, slot *domain.Slot, title string) (*models.SlotResponse, error) {
	availability, err := s.ledger.ForSlot(ctx, slot)
	if err != nil {
		s.logger.Error("failed to compute availability for slot id=%s: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: availability: %v", ErrInternal, err)
	}
	resp := models.FromDomainSlot(slot, availability, title)
	return &resp, nil
}

func validateUpsert(req *models.UpsertSlotRequest) (time.Time, types.TimeString, error) {
	if strings.TrimSpace(req.WorkshopID) == "" || strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return time.Time{}, "", fmt.Errorf("%w: workshopId, date, time required", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	t, err := types.NewTimeStringFromString(strings.TrimSpace(req.Time))
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid time %q", ErrInvalidInput, req.Time)
	}

	return date, t, nil
}
