package get_available_slots

import (
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота с занятостью
type SlotResponse struct {
	ID              string `json:"id"`
	WorkshopID      string `json:"workshopId"`
	Date            string `json:"date"` // "2025-10-15"
	Time            string `json:"time"` // "11:00"
	StartAt         string `json:"startAt"`
	DurationMinutes int    `json:"durationMinutes"`
	CapacityTotal   int    `json:"capacityTotal"`
	CapacityBooked  int    `json:"capacityBooked"`
	HeldSeats       int    `json:"heldSeats"`
	FreeSeats       int    `json:"freeSeats"`
	Status          string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response (массив слотов)
func FromUseCaseResponse(resp *getAvailableSlots.Response) []SlotResponse {
	result := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		result = append(result, SlotResponse{
			ID:              s.ID,
			WorkshopID:      s.WorkshopID,
			Date:            s.Date.Format(domain.DateFormat),
			Time:            s.Time.String(),
			StartAt:         s.StartAt,
			DurationMinutes: s.DurationMinutes,
			CapacityTotal:   s.CapacityTotal,
			CapacityBooked:  s.CapacityBooked,
			HeldSeats:       s.HeldSeats,
			FreeSeats:       s.FreeSeats,
			Status:          s.Status,
		})
	}
	return result
}
