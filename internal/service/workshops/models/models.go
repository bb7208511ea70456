package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// CreateWorkshopRequest создание мастер-класса
type CreateWorkshopRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	DurationMinutes *int    `json:"durationMinutes"`
	CapacityPerSlot *int    `json:"capacityPerSlot"`
	Result          string  `json:"result"`
	Price           *int    `json:"price"`
	ImageURL        *string `json:"imageUrl,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// UpdateWorkshopRequest частичное обновление. Пустой ImageURL сбрасывает картинку.
type UpdateWorkshopRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	CapacityPerSlot *int    `json:"capacityPerSlot,omitempty"`
	Result          *string `json:"result,omitempty"`
	Price           *int    `json:"price,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// WorkshopResponse мастер-класс
type WorkshopResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
	CapacityPerSlot int       `json:"capacityPerSlot"`
	Result          string    `json:"result"`
	Price           int       `json:"price"`
	ImageURL        *string   `json:"imageUrl"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FromDomainWorkshop конвертирует мастер-класс
func FromDomainWorkshop(w *domain.Workshop) WorkshopResponse {
	return WorkshopResponse{
		ID:              w.ID,
		Title:           w.Title,
		Description:     w.Description,
		DurationMinutes: w.DurationMinutes,
		CapacityPerSlot: w.CapacityPerSlot,
		Result:          w.Result,
		Price:           w.Price,
		ImageURL:        w.ImageURL,
		IsActive:        w.IsActive,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

// FromDomainWorkshopList конвертирует список
func FromDomainWorkshopList(list []*domain.Workshop) []WorkshopResponse {
	result := make([]WorkshopResponse, 0, len(list))
	for _, w := range list {
		result = append(result, FromDomainWorkshop(w))
	}
	return result
}
