package domain

import "time"

// HoldStatus статус удержания мест
type HoldStatus string

const (
	HoldActive   HoldStatus = "ACTIVE"
	HoldReleased HoldStatus = "RELEASED"
	HoldExpired  HoldStatus = "EXPIRED"
)

// SeatHold временное удержание мест под заявку, ожидающую решения администратора
type SeatHold struct {
	ID               string
	SlotID           string
	BookingID        *string
	ParticipantsHeld int
	Reason           string
	ExpiresAt        *time.Time // nil - бессрочно
	Status           HoldStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewOverflowHold удержание под заявку сверх вместимости
func NewOverflowHold(id string, b *Booking, now time.Time, ttl time.Duration) *SeatHold {
	expiresAt := now.Add(ttl)
	bookingID := b.ID
	return &SeatHold{
		ID:               id,
		SlotID:           b.SlotID,
		BookingID:        &bookingID,
		ParticipantsHeld: b.Participants,
		Reason:           OverflowHoldReason,
		ExpiresAt:        &expiresAt,
		Status:           HoldActive,
	}
}

// CountsAt учитывается ли удержание в занятости слота на момент now.
// Истечение ленивое: хранимый статус может оставаться ACTIVE.
func (h *SeatHold) CountsAt(now time.Time) bool {
	if h.Status != HoldActive {
		return false
	}
	return h.ExpiresAt == nil || h.ExpiresAt.After(now)
}

// EffectiveStatus статус с учётом истечения срока
func (h *SeatHold) EffectiveStatus(now time.Time) HoldStatus {
	if h.Status == HoldActive && !h.CountsAt(now) {
		return HoldExpired
	}
	return h.Status
}
