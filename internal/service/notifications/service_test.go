package notifications

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

type mockMessenger struct{ mock.Mock }

func (m *mockMessenger) SendMessage(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}

func testLogger() Logger {
	return logger.NewWithWriter(io.Discard, "debug")
}

func TestService_DispatchAdmitted_Confirmed(t *testing.T) {
	ctx := context.Background()
	pub := &mockPublisher{}
	msg := &mockMessenger{}
	svc := NewService(pub, msg, testLogger())

	event := BookingEvent{BookingID: "b1", Status: string(domain.BookingConfirmed)}
	pub.On("Publish", ctx, RoutingBookingConfirmed, event).Return(nil).Once()

	svc.dispatchAdmitted(ctx, event)

	pub.AssertExpectations(t)
	msg.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}

func TestService_DispatchAdmitted_PendingNotifiesAdmin(t *testing.T) {
	ctx := context.Background()
	pub := &mockPublisher{}
	msg := &mockMessenger{}
	svc := NewService(pub, msg, testLogger())

	expires := time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC)
	event := BookingEvent{
		BookingID:     "b2",
		WorkshopTitle: "Гончарный круг",
		Name:          "Анна",
		Phone:         "+79991234567",
		Participants:  5,
		Status:        string(domain.BookingPendingAdmin),
		HoldExpiresAt: &expires,
	}

	pub.On("Publish", ctx, RoutingBookingPendingAdmin, event).Return(errors.New("channel closed")).Once()
	msg.On("SendMessage", ctx, mock.MatchedBy(func(text string) bool {
		return assert.Contains(t, text, "Гончарный круг") &&
			assert.Contains(t, text, "Участников: 5") &&
			assert.Contains(t, text, "14.03.2025 12:30")
	})).Return(nil).Once()

	svc.dispatchAdmitted(ctx, event)

	pub.AssertExpectations(t)
	msg.AssertExpectations(t)
}

func TestService_DispatchStatusChanged(t *testing.T) {
	ctx := context.Background()
	pub := &mockPublisher{}
	msg := &mockMessenger{}
	svc := NewService(pub, msg, testLogger())

	event := BookingEvent{BookingID: "b3", Status: "REJECTED", PreviousStatus: "PENDING_ADMIN"}
	pub.On("Publish", ctx, RoutingBookingStatusChanged, event).Return(nil).Once()
	msg.On("SendMessage", ctx, mock.MatchedBy(func(text string) bool {
		return assert.Contains(t, text, "PENDING_ADMIN → REJECTED")
	})).Return(errors.New("telegram down")).Once()

	svc.dispatchStatusChanged(ctx, event)

	pub.AssertExpectations(t)
	msg.AssertExpectations(t)
}

func TestService_NilService(t *testing.T) {
	var svc *Service
	assert.NotPanics(t, func() {
		svc.BookingAdmitted(context.Background(), BookingEvent{})
	})
}

func TestNewBookingEvent(t *testing.T) {
	now := time.Now()
	b := &domain.Booking{ID: "b1", SlotID: "s1", WorkshopID: "w1", Name: "Иван", Participants: 2, Status: domain.BookingConfirmed}
	slot := &domain.Slot{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Time: "18:00"}
	w := &domain.Workshop{Title: "Лепка"}

	event := NewBookingEvent(b, slot, w, now)

	assert.Equal(t, "2025-03-14T18:00:00", event.StartAt)
	assert.Equal(t, "Лепка", event.WorkshopTitle)
	assert.Equal(t, "CONFIRMED", event.Status)
}
