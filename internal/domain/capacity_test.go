package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeAvailability(t *testing.T) {
	tests := []struct {
		name                   string
		capacity, booked, held int
		wantFree               int
		wantOversubscribed     bool
	}{
		{name: "empty slot", capacity: 6, wantFree: 6},
		{name: "booked and held", capacity: 6, booked: 2, held: 3, wantFree: 1},
		{name: "exactly full", capacity: 6, booked: 2, held: 4, wantFree: 0},
		{name: "oversubscribed clamps to zero", capacity: 6, booked: 5, held: 4, wantFree: 0, wantOversubscribed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ComputeAvailability("s1", tt.capacity, tt.booked, tt.held)
			assert.Equal(t, tt.wantFree, a.FreeSeats)
			assert.Equal(t, tt.booked, a.BookedSeats)
			assert.Equal(t, tt.held, a.HeldSeats)
			assert.Equal(t, tt.wantOversubscribed, a.Oversubscribed())
		})
	}
}

func TestDecideAdmission(t *testing.T) {
	assert.Equal(t, BookingConfirmed, DecideAdmission(4, 4))
	assert.Equal(t, BookingPendingAdmin, DecideAdmission(5, 4))
	assert.Equal(t, BookingPendingAdmin, DecideAdmission(1, 0))
	assert.Equal(t, BookingConfirmed, DecideAdmission(1, 6))
}

func TestSeatHold_CountsAt(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.True(t, (&SeatHold{Status: HoldActive}).CountsAt(now))
	assert.True(t, (&SeatHold{Status: HoldActive, ExpiresAt: &future}).CountsAt(now))
	assert.False(t, (&SeatHold{Status: HoldActive, ExpiresAt: &now}).CountsAt(now))
	assert.False(t, (&SeatHold{Status: HoldActive, ExpiresAt: &past}).CountsAt(now))
	assert.False(t, (&SeatHold{Status: HoldReleased, ExpiresAt: &future}).CountsAt(now))

	assert.Equal(t, HoldExpired, (&SeatHold{Status: HoldActive, ExpiresAt: &past}).EffectiveStatus(now))
	assert.Equal(t, HoldActive, (&SeatHold{Status: HoldActive, ExpiresAt: &future}).EffectiveStatus(now))
	assert.Equal(t, HoldReleased, (&SeatHold{Status: HoldReleased, ExpiresAt: &past}).EffectiveStatus(now))
}

func TestNewOverflowHold(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	b := &Booking{ID: "b1", SlotID: "s1", Participants: 5}

	h := NewOverflowHold("h1", b, now, DefaultHoldTTL)

	assert.Equal(t, "s1", h.SlotID)
	assert.Equal(t, "b1", *h.BookingID)
	assert.Equal(t, 5, h.ParticipantsHeld)
	assert.Equal(t, OverflowHoldReason, h.Reason)
	assert.Equal(t, now.Add(2*time.Hour), *h.ExpiresAt)
	assert.Equal(t, HoldActive, h.Status)
}
