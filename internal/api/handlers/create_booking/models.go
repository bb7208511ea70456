package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// Либо slotId, либо workshopId + date + time.
type CreateBookingRequest struct {
	SlotID       string  `json:"slotId,omitempty"`
	WorkshopID   string  `json:"workshopId,omitempty"`
	Date         string  `json:"date,omitempty"` // "2025-10-15"
	Time         string  `json:"time,omitempty"` // "11:00"
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Messenger    string  `json:"messenger"`
	Participants *int    `json:"participants,omitempty"`
	Comment      *string `json:"comment,omitempty"`
	Honeypot     string  `json:"honeypot,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string  `json:"id"`
	SlotID        string  `json:"slotId"`
	Status        string  `json:"status"`
	Participants  int     `json:"participants"`
	Message       string  `json:"message"`
	HoldExpiresAt *string `json:"holdExpiresAt,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат полей проверяет use case.
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		SlotID:       r.SlotID,
		WorkshopID:   r.WorkshopID,
		Date:         r.Date,
		Time:         r.Time,
		Name:         r.Name,
		Phone:        r.Phone,
		Messenger:    r.Messenger,
		Participants: r.Participants,
		Comment:      r.Comment,
		Honeypot:     r.Honeypot,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	result := &BookingResponse{
		ID:           resp.ID,
		SlotID:       resp.SlotID,
		Status:       resp.Status,
		Participants: resp.Participants,
		Message:      resp.Message,
	}
	if resp.HoldExpiresAt != nil {
		expires := resp.HoldExpiresAt.UTC().Format(time.RFC3339)
		result.HoldExpiresAt = &expires
	}
	return result
}
