package get_available_slots

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/capacity"
	"github.com/m04kA/SMC-StudioBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

func date(s string) time.Time {
	d, _ := time.Parse(domain.DateFormat, s)
	return d
}

func seed(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()

	store := memstore.New()
	store.AddWorkshop(domain.Workshop{ID: "w1", Title: "Гончарный круг", DurationMinutes: 120, CapacityPerSlot: 6, IsActive: true})

	slots := []*domain.Slot{
		{ID: "s2", WorkshopID: "w1", Date: date("2026-02-03"), Time: "11:00", Capacity: 6, DurationMinutes: 120, Status: domain.SlotOpen},
		{ID: "s1", WorkshopID: "w1", Date: date("2026-02-02"), Time: "15:00", Capacity: 6, DurationMinutes: 90, Status: domain.SlotHeld},
		{ID: "s0", WorkshopID: "w1", Date: date("2026-02-02"), Time: "11:00", Capacity: 6, DurationMinutes: 120, Status: domain.SlotOpen},
	}
	for _, s := range slots {
		require.NoError(t, store.Slots().InsertIfAbsent(ctx, s))
	}

	_, err := store.Bookings().Create(ctx, &domain.Booking{ID: "b1", WorkshopID: "w1", SlotID: "s0", Participants: 2, Status: domain.BookingConfirmed})
	require.NoError(t, err)
	_, err = store.Bookings().Create(ctx, &domain.Booking{ID: "b2", WorkshopID: "w1", SlotID: "s0", Participants: 3, Status: domain.BookingCancelled})
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Minute)
	_, err = store.Holds().Create(ctx, &domain.SeatHold{ID: "h1", SlotID: "s0", BookingID: ptr.Ptr("b3"), ParticipantsHeld: 3, ExpiresAt: &future, Status: domain.HoldActive})
	require.NoError(t, err)
	_, err = store.Holds().Create(ctx, &domain.SeatHold{ID: "h2", SlotID: "s2", BookingID: ptr.Ptr("b4"), ParticipantsHeld: 5, ExpiresAt: &past, Status: domain.HoldActive})
	require.NoError(t, err)

	return store
}

func newUseCase(store *memstore.Store) *UseCase {
	return NewUseCase(
		store.Workshops(),
		store.Slots(),
		capacity.NewLedger(store.Bookings(), store.Holds()),
		logger.NewWithWriter(io.Discard, "info"),
	)
}

func TestUseCase_Execute(t *testing.T) {
	uc := newUseCase(seed(t))

	resp, err := uc.Execute(context.Background(), &Request{WorkshopID: "w1"})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	ids := []string{resp.Slots[0].ID, resp.Slots[1].ID, resp.Slots[2].ID}
	assert.Equal(t, []string{"s0", "s1", "s2"}, ids, "sorted by date then time")

	s0 := resp.Slots[0]
	assert.Equal(t, "2026-02-02T11:00:00", s0.StartAt)
	assert.Equal(t, 6, s0.CapacityTotal)
	assert.Equal(t, 2, s0.CapacityBooked)
	assert.Equal(t, 3, s0.HeldSeats)
	assert.Equal(t, 1, s0.FreeSeats)

	s1 := resp.Slots[1]
	assert.Equal(t, string(domain.SlotHeld), s1.Status)
	assert.Equal(t, 6, s1.FreeSeats, "frozen slot still reports its seats")
	assert.Equal(t, 90, s1.DurationMinutes)

	s2 := resp.Slots[2]
	assert.Equal(t, 0, s2.HeldSeats, "expired hold is not counted")
	assert.Equal(t, 6, s2.FreeSeats)
}

func TestUseCase_Execute_DateRange(t *testing.T) {
	uc := newUseCase(seed(t))

	from := date("2026-02-03")
	resp, err := uc.Execute(context.Background(), &Request{WorkshopID: "w1", DateFrom: &from, DateTo: &from})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "s2", resp.Slots[0].ID)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newUseCase(seed(t))
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{WorkshopID: "nope"})
	require.ErrorIs(t, err, ErrWorkshopNotFound)

	from, to := date("2026-02-05"), date("2026-02-01")
	_, err = uc.Execute(ctx, &Request{WorkshopID: "w1", DateFrom: &from, DateTo: &to})
	require.ErrorIs(t, err, ErrInvalidInput)
}
