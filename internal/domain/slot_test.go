package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_CheckAdmissible(t *testing.T) {
	assert.NoError(t, (&Slot{Status: SlotOpen}).CheckAdmissible())
	assert.ErrorIs(t, (&Slot{Status: SlotHeld}).CheckAdmissible(), ErrSlotUnavailable)
	assert.ErrorIs(t, (&Slot{Status: SlotCancelled}).CheckAdmissible(), ErrSlotCancelled)
	assert.ErrorIs(t, (&Slot{Status: "DRAFT"}).CheckAdmissible(), ErrInvalidSlotStatus)
}

func TestSlot_HoldUnhold(t *testing.T) {
	s := &Slot{Status: SlotOpen}

	changed, err := s.Hold()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, SlotHeld, s.Status)

	changed, err = s.Hold()
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = s.Unhold()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, SlotOpen, s.Status)

	assert.True(t, s.Cancel())
	assert.False(t, s.Cancel())

	_, err = s.Hold()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = s.Unhold()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, SlotCancelled, s.Status)
}

func TestSlot_SetStatus(t *testing.T) {
	s := &Slot{Status: SlotCancelled}

	changed, err := s.SetStatus(SlotOpen)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = s.SetStatus("CLOSED")
	assert.ErrorIs(t, err, ErrInvalidSlotStatus)
	assert.Equal(t, SlotOpen, s.Status)
}

func TestNewSlotForWorkshop_UsesWorkshopDefaults(t *testing.T) {
	w := &Workshop{ID: "w2", CapacityPerSlot: 2, DurationMinutes: 150}
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	s := NewSlotForWorkshop("s1", w, date, "18:30")

	assert.Equal(t, 2, s.Capacity)
	assert.Equal(t, 150, s.DurationMinutes)
	assert.Equal(t, SlotOpen, s.Status)
	assert.Equal(t, "2025-03-14T18:30:00", s.StartAt())
	assert.Equal(t, SlotKey{WorkshopID: "w2", Date: date, Time: "18:30"}, s.Key())
}
