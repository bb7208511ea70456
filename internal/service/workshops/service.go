package workshops

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	workshopRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-StudioBooking/internal/service/workshops/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

// Service сервис каталога мастер-классов
type Service struct {
	workshopRepo WorkshopRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса мастер-классов
func NewService(workshopRepo WorkshopRepository, logger Logger) *Service {
	return &Service{
		workshopRepo: workshopRepo,
		logger:       logger,
	}
}

// ListActive активные мастер-классы для публичной витрины
func (s *Service) ListActive(ctx context.Context) ([]models.WorkshopResponse, error) {
	return s.list(ctx, true)
}

// ListAll все мастер-классы для администратора
func (s *Service) ListAll(ctx context.Context) ([]models.WorkshopResponse, error) {
	return s.list(ctx, false)
}

func (s *Service) list(ctx context.Context, onlyActive bool) ([]models.WorkshopResponse, error) {
	list, err := s.workshopRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error (onlyActive=%t): %v", onlyActive, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWorkshopList(list), nil
}

// Create создаёт мастер-класс. Числовые поля приводятся к допустимым значениям.
func (s *Service) Create(ctx context.Context, req *models.CreateWorkshopRequest) (*models.WorkshopResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.DurationMinutes == nil || req.CapacityPerSlot == nil || req.Price == nil {
		return nil, fmt.Errorf("%w: title, durationMinutes, capacityPerSlot, price required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > domain.MaxWorkshopTitleLen {
		return nil, fmt.Errorf("%w: title is too long", ErrInvalidInput)
	}

	w := &domain.Workshop{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     req.Description,
		DurationMinutes: orDefault(*req.DurationMinutes, domain.DefaultWorkshopDurationMinutes),
		CapacityPerSlot: orDefault(*req.CapacityPerSlot, domain.DefaultWorkshopCapacity),
		Result:          req.Result,
		Price:           *req.Price,
		ImageURL:        normalizeImageURL(req.ImageURL),
		IsActive:        ptr.Value(req.IsActive, true),
	}
	w.Normalize()

	created, err := s.workshopRepo.Create(ctx, w)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: workshop id=%s title=%q", created.ID, created.Title)
	resp := models.FromDomainWorkshop(created)
	return &resp, nil
}

// Update частично обновляет мастер-класс. Слоты, созданные ранее, не меняются.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateWorkshopRequest) (*models.WorkshopResponse, error) {
	w, err := s.workshopRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workshopRepo.ErrWorkshopNotFound) {
			s.logger.Warn("Update: workshop id=%s not found", id)
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("Update: failed to get workshop id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - get: %v", ErrInternal, err)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		w.Title = title
	}
	if req.Description != nil {
		w.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		w.DurationMinutes = *req.DurationMinutes
	}
	if req.CapacityPerSlot != nil {
		w.CapacityPerSlot = *req.CapacityPerSlot
	}
	if req.Result != nil {
		w.Result = *req.Result
	}
	if req.Price != nil {
		w.Price = *req.Price
	}
	if req.ImageURL != nil {
		w.ImageURL = normalizeImageURL(req.ImageURL)
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	w.Normalize()

	if err := s.workshopRepo.Update(ctx, w); err != nil {
		if errors.Is(err, workshopRepo.ErrWorkshopNotFound) {
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("Update: repository error for workshop id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: workshop id=%s updated", id)
	resp := models.FromDomainWorkshop(w)
	return &resp, nil
}

// Delete удаляет мастер-класс без слотов
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.workshopRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, workshopRepo.ErrWorkshopNotFound):
			s.logger.Warn("Delete: workshop id=%s not found", id)
			return ErrWorkshopNotFound
		case errors.Is(err, workshopRepo.ErrWorkshopInUse):
			s.logger.Warn("Delete: workshop id=%s still has slots", id)
			return ErrWorkshopInUse
		default:
			s.logger.Error("Delete: repository error for workshop id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Delete: workshop id=%s deleted", id)
	return nil
}

// orDefault нулевое значение заменяется значением по умолчанию
func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func normalizeImageURL(u *string) *string {
	if u == nil || strings.TrimSpace(*u) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*u)
	return &trimmed
}
