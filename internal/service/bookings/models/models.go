package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Request модели

// ListBookingsRequest фильтр списка бронирований администратора
type ListBookingsRequest struct {
	WorkshopID *string    `json:"workshopId,omitempty"`
	Status     *string    `json:"status,omitempty"`
	DateFrom   *time.Time `json:"dateFrom,omitempty"` // по дате слота, включительно
	DateTo     *time.Time `json:"dateTo,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		WorkshopID: r.WorkshopID,
		DateFrom:   r.DateFrom,
		DateTo:     r.DateTo,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// SlotFilter фильтр слотов, покрывающий выборку бронирований
func (r *ListBookingsRequest) SlotFilter() domain.SlotFilter {
	return domain.SlotFilter{
		WorkshopID: r.WorkshopID,
		DateFrom:   r.DateFrom,
		DateTo:     r.DateTo,
	}
}

// Response модели

// SlotInfo слот бронирования
type SlotInfo struct {
	ID              string `json:"id"`
	WorkshopID      string `json:"workshopId"`
	Date            string `json:"date"` // "2026-02-02"
	Time            string `json:"time"` // "11:00"
	StartAt         string `json:"startAt"`
	Capacity        int    `json:"capacity"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// HoldInfo удержание мест бронирования
type HoldInfo struct {
	ID               string     `json:"id"`
	ParticipantsHeld int        `json:"participantsHeld"`
	Reason           string     `json:"reason"`
	ExpiresAt        *time.Time `json:"expiresAt"`
	Status           string     `json:"status"` // с учётом истечения срока
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string    `json:"id"`
	WorkshopID   string    `json:"workshopId"`
	SlotID       string    `json:"slotId"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Messenger    string    `json:"messenger"`
	Participants int       `json:"participants"`
	Comment      *string   `json:"comment"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Slot         *SlotInfo `json:"slot,omitempty"`
	SeatHold     *HoldInfo `json:"seatHold"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Конвертеры

// FromDomainBooking собирает ответ. slot и hold могут быть nil.
func FromDomainBooking(b *domain.Booking, slot *domain.Slot, hold *domain.SeatHold, now time.Time) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID,
		WorkshopID:   b.WorkshopID,
		SlotID:       b.SlotID,
		Name:         b.Name,
		Phone:        b.Phone,
		Messenger:    b.Messenger,
		Participants: b.Participants,
		Comment:      b.Comment,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if slot != nil {
		resp.Slot = FromDomainSlot(slot)
	}

	if hold != nil {
		resp.SeatHold = &HoldInfo{
			ID:               hold.ID,
			ParticipantsHeld: hold.ParticipantsHeld,
			Reason:           hold.Reason,
			ExpiresAt:        hold.ExpiresAt,
			Status:           string(hold.EffectiveStatus(now)),
		}
	}

	return resp
}

// FromDomainSlot конвертирует слот
func FromDomainSlot(s *domain.Slot) *SlotInfo {
	return &SlotInfo{
		ID:              s.ID,
		WorkshopID:      s.WorkshopID,
		Date:            s.Date.Format(domain.DateFormat),
		Time:            s.Time.String(),
		StartAt:         s.StartAt(),
		Capacity:        s.Capacity,
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
	}
}
