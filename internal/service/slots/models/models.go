package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Request модели

// ListSlotsRequest фильтр слотов администратора
type ListSlotsRequest struct {
	WorkshopID *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// UpsertSlotRequest создание или обновление слота по (мастер-класс, дата, время).
// Freeze=true имеет приоритет над Status.
type UpsertSlotRequest struct {
	WorkshopID      string  `json:"workshopId"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Time            string  `json:"time"` // HH:MM
	Capacity        *int    `json:"capacity,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Freeze          *bool   `json:"freeze,omitempty"`
	Status          *string `json:"status,omitempty"`
}

// DesiredStatus статус слота после upsert: freeze -> HELD, иначе валидный status, иначе OPEN
func (r *UpsertSlotRequest) DesiredStatus() domain.SlotStatus {
	if r.Freeze != nil && *r.Freeze {
		return domain.SlotHeld
	}
	if r.Status != nil {
		if status, err := domain.ParseSlotStatus(*r.Status); err == nil {
			return status
		}
	}
	return domain.SlotOpen
}

// UpdateSlotRequest частичное обновление слота
type UpdateSlotRequest struct {
	Status          *string `json:"status,omitempty"`
	Capacity        *int    `json:"capacity,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
}

// Response модели

// SlotResponse слот с занятостью
type SlotResponse struct {
	ID              string    `json:"id"`
	WorkshopID      string    `json:"workshopId"`
	WorkshopTitle   string    `json:"workshopTitle,omitempty"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	StartAt         string    `json:"startAt"`
	Capacity        int       `json:"capacity"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	CapacityTotal   int       `json:"capacityTotal"`
	CapacityBooked  int       `json:"capacityBooked"`
	HeldSeats       int       `json:"heldSeats"`
	FreeSeats       int       `json:"freeSeats"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot собирает ответ из слота и его занятости
func FromDomainSlot(s *domain.Slot, a domain.SlotAvailability, workshopTitle string) SlotResponse {
	return SlotResponse{
		ID:              s.ID,
		WorkshopID:      s.WorkshopID,
		WorkshopTitle:   workshopTitle,
		Date:            s.Date.Format(domain.DateFormat),
		Time:            s.Time.String(),
		StartAt:         s.StartAt(),
		Capacity:        s.Capacity,
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
		CapacityTotal:   a.Capacity,
		CapacityBooked:  a.BookedSeats,
		HeldSeats:       a.HeldSeats,
		FreeSeats:       a.FreeSeats,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
