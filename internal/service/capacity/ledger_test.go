package capacity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) SumConfirmedBySlotIDs(ctx context.Context, slotIDs []string) (map[string]int, error) {
	args := m.Called(ctx, slotIDs)
	if v := args.Get(0); v != nil {
		return v.(map[string]int), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHoldRepo struct{ mock.Mock }

func (m *mockHoldRepo) SumActiveBySlotIDs(ctx context.Context, slotIDs []string, now time.Time) (map[string]int, error) {
	args := m.Called(ctx, slotIDs, now)
	if v := args.Get(0); v != nil {
		return v.(map[string]int), args.Error(1)
	}
	return nil, args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func TestLedger_ForSlots(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	bookings := &mockBookingRepo{}
	holds := &mockHoldRepo{}
	ledger := NewLedger(bookings, holds).WithTimeProvider(fixedTime{now})

	slots := []*domain.Slot{
		{ID: "s1", Capacity: 6},
		{ID: "s2", Capacity: 2},
		{ID: "s3", Capacity: 4},
	}
	ids := []string{"s1", "s2", "s3"}

	bookings.On("SumConfirmedBySlotIDs", ctx, ids).Return(map[string]int{"s1": 2, "s2": 2}, nil).Once()
	holds.On("SumActiveBySlotIDs", ctx, ids, now).Return(map[string]int{"s1": 3, "s2": 1}, nil).Once()

	result, err := ledger.ForSlots(ctx, slots)
	require.NoError(t, err)

	assert.Equal(t, domain.SlotAvailability{SlotID: "s1", Capacity: 6, BookedSeats: 2, HeldSeats: 3, FreeSeats: 1}, result["s1"])
	assert.Equal(t, 0, result["s2"].FreeSeats)
	assert.Equal(t, domain.SlotAvailability{SlotID: "s3", Capacity: 4, FreeSeats: 4}, result["s3"])

	bookings.AssertExpectations(t)
	holds.AssertExpectations(t)
}

func TestLedger_ForSlot_MatchesBatch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	bookings := &mockBookingRepo{}
	holds := &mockHoldRepo{}
	ledger := NewLedger(bookings, holds).WithTimeProvider(fixedTime{now})

	bookings.On("SumConfirmedBySlotIDs", ctx, []string{"s1"}).Return(map[string]int{"s1": 2}, nil)
	holds.On("SumActiveBySlotIDs", ctx, []string{"s1"}, now).Return(map[string]int{"s1": 3}, nil)

	slot := &domain.Slot{ID: "s1", Capacity: 6}

	single, err := ledger.ForSlot(ctx, slot)
	require.NoError(t, err)
	batch, err := ledger.ForSlots(ctx, []*domain.Slot{slot})
	require.NoError(t, err)

	assert.Equal(t, batch["s1"], single)
	assert.Equal(t, 1, single.FreeSeats)
}

func TestLedger_ForSlots_RepositoryError(t *testing.T) {
	ctx := context.Background()

	bookings := &mockBookingRepo{}
	holds := &mockHoldRepo{}
	ledger := NewLedger(bookings, holds)

	bookings.On("SumConfirmedBySlotIDs", ctx, []string{"s1"}).Return(nil, errors.New("connection reset"))

	_, err := ledger.ForSlots(ctx, []*domain.Slot{{ID: "s1", Capacity: 6}})
	require.ErrorIs(t, err, ErrInternal)
	holds.AssertNotCalled(t, "SumActiveBySlotIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedger_ForSlots_Empty(t *testing.T) {
	ledger := NewLedger(&mockBookingRepo{}, &mockHoldRepo{})

	result, err := ledger.ForSlots(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}
