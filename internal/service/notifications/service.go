package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Service рассылает события бронирований после фиксации транзакции.
// Ошибки доставки только логируются: бронирование уже сохранено.
type Service struct {
	publisher Publisher
	messenger Messenger
	logger    Logger
	timeout   time.Duration
}

// NewService создает сервис уведомлений. publisher и messenger могут быть nil.
func NewService(publisher Publisher, messenger Messenger, logger Logger) *Service {
	return &Service{
		publisher: publisher,
		messenger: messenger,
		logger:    logger,
		timeout:   defaultTimeout,
	}
}

// BookingAdmitted уведомляет о новой заявке
func (s *Service) BookingAdmitted(ctx context.Context, event BookingEvent) {
	s.async(ctx, func(ctx context.Context) { s.dispatchAdmitted(ctx, event) })
}

// BookingStatusChanged уведомляет о решении администратора
func (s *Service) BookingStatusChanged(ctx context.Context, event BookingEvent) {
	s.async(ctx, func(ctx context.Context) { s.dispatchStatusChanged(ctx, event) })
}

func (s *Service) async(ctx context.Context, fn func(ctx context.Context)) {
	if s == nil || (s.publisher == nil && s.messenger == nil) {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		fn(ctx)
	}()
}

func (s *Service) dispatchAdmitted(ctx context.Context, event BookingEvent) {
	routingKey := RoutingBookingConfirmed
	if event.Status == string(domain.BookingPendingAdmin) {
		routingKey = RoutingBookingPendingAdmin
	}
	s.publish(ctx, routingKey, event)

	// Администратору пишем только о заявках, которые ждут решения
	if event.Status == string(domain.BookingPendingAdmin) {
		s.send(ctx, event.BookingID, formatPendingMessage(event))
	}
}

func (s *Service) dispatchStatusChanged(ctx context.Context, event BookingEvent) {
	s.publish(ctx, RoutingBookingStatusChanged, event)
	s.send(ctx, event.BookingID, formatStatusMessage(event))
}

func (s *Service) publish(ctx context.Context, routingKey string, event BookingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.logger.Warn("Notifications: failed to publish %s for booking id=%s: %v", routingKey, event.BookingID, err)
		return
	}
	s.logger.Info("Notifications: published %s for booking id=%s", routingKey, event.BookingID)
}

func (s *Service) send(ctx context.Context, bookingID, text string) {
	if s.messenger == nil {
		return
	}
	if err := s.messenger.SendMessage(ctx, text); err != nil {
		s.logger.Warn("Notifications: failed to send message for booking id=%s: %v", bookingID, err)
	}
}

func formatPendingMessage(e BookingEvent) string {
	var b strings.Builder
	b.WriteString("Новая заявка сверх вместимости\n")
	writeBookingLines(&b, e)
	if e.HoldExpiresAt != nil {
		fmt.Fprintf(&b, "Места удержаны до: %s\n", e.HoldExpiresAt.Format("02.01.2006 15:04"))
	}
	return b.String()
}

func formatStatusMessage(e BookingEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Статус заявки изменён: %s → %s\n", e.PreviousStatus, e.Status)
	writeBookingLines(&b, e)
	return b.String()
}

func writeBookingLines(b *strings.Builder, e BookingEvent) {
	if e.WorkshopTitle != "" {
		fmt.Fprintf(b, "Мастер-класс: %s\n", e.WorkshopTitle)
	}
	if e.StartAt != "" {
		fmt.Fprintf(b, "Начало: %s\n", e.StartAt)
	}
	fmt.Fprintf(b, "Имя: %s\nТелефон: %s\nУчастников: %d\n", e.Name, e.Phone, e.Participants)
	if e.Messenger != "" {
		fmt.Fprintf(b, "Мессенджер: %s\n", e.Messenger)
	}
}

// NewBookingEvent собирает событие из бронирования и слота. slot и workshop могут быть nil.
func NewBookingEvent(b *domain.Booking, slot *domain.Slot, workshop *domain.Workshop, now time.Time) BookingEvent {
	event := BookingEvent{
		BookingID:    b.ID,
		SlotID:       b.SlotID,
		WorkshopID:   b.WorkshopID,
		Name:         b.Name,
		Phone:        b.Phone,
		Messenger:    b.Messenger,
		Participants: b.Participants,
		Status:       string(b.Status),
		OccurredAt:   now,
	}
	if slot != nil {
		event.StartAt = slot.StartAt()
	}
	if workshop != nil {
		event.WorkshopTitle = workshop.Title
	}
	return event
}
