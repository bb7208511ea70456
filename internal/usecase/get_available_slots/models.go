package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Request модель запроса на получение слотов мастер-класса
type Request struct {
	WorkshopID string
	DateFrom   *time.Time // включительно
	DateTo     *time.Time // включительно
}

// Response модель ответа со слотами и их занятостью
type Response struct {
	WorkshopID string
	Slots      []Slot
}

// Slot слот с рассчитанной занятостью
type Slot struct {
	ID              string
	WorkshopID      string
	Date            time.Time
	Time            types.TimeString
	StartAt         string
	DurationMinutes int
	CapacityTotal   int
	CapacityBooked  int
	HeldSeats       int
	FreeSeats       int
	Status          string
}
