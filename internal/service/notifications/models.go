package notifications

import "time"

// Ключи маршрутизации событий
const (
	RoutingBookingConfirmed     = "booking.confirmed"
	RoutingBookingPendingAdmin  = "booking.pending_admin"
	RoutingBookingStatusChanged = "booking.status_changed"
)

// BookingEvent событие по бронированию
type BookingEvent struct {
	BookingID      string     `json:"bookingId"`
	SlotID         string     `json:"slotId"`
	WorkshopID     string     `json:"workshopId"`
	WorkshopTitle  string     `json:"workshopTitle,omitempty"`
	StartAt        string     `json:"startAt,omitempty"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Messenger      string     `json:"messenger,omitempty"`
	Participants   int        `json:"participants"`
	Status         string     `json:"status"`
	PreviousStatus string     `json:"previousStatus,omitempty"`
	HoldExpiresAt  *time.Time `json:"holdExpiresAt,omitempty"`
	OccurredAt     time.Time  `json:"occurredAt"`
}
