package seatholds

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Manager создаёт и снимает удержания мест.
// Все переходы бронирования из PENDING_ADMIN снимают удержание только через ReleaseForBooking.
type Manager struct {
	holdRepo     SeatHoldRepository
	ttl          time.Duration
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewManager создает новый менеджер удержаний. ttl <= 0 заменяется значением по умолчанию.
func NewManager(holdRepo SeatHoldRepository, ttl time.Duration, metrics Metrics, logger Logger) *Manager {
	if ttl <= 0 {
		ttl = domain.DefaultHoldTTL
	}
	return &Manager{
		holdRepo:     holdRepo,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (m *Manager) WithTimeProvider(tp TimeProvider) *Manager {
	m.timeProvider = tp
	return m
}

// TTL срок жизни удержания
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// PlaceOverflowHold удерживает места под заявку сверх вместимости.
// Вызывается в транзакции создания бронирования.
func (m *Manager) PlaceOverflowHold(ctx context.Context, booking *domain.Booking) (*domain.SeatHold, error) {
	if booking.Status != domain.BookingPendingAdmin {
		return nil, fmt.Errorf("%w: booking id=%s status=%s", ErrInvalidBooking, booking.ID, booking.Status)
	}

	hold := domain.NewOverflowHold(uuid.NewString(), booking, m.timeProvider.Now(), m.ttl)

	created, err := m.holdRepo.Create(ctx, hold)
	if err != nil {
		m.logger.Error("PlaceOverflowHold: failed to create hold for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: PlaceOverflowHold - create: %v", ErrInternal, err)
	}

	m.logger.Info("PlaceOverflowHold: held %d seats in slot id=%s for booking id=%s until %s",
		created.ParticipantsHeld, created.SlotID, booking.ID, created.ExpiresAt.Format(time.RFC3339))
	return created, nil
}

// ReleaseForBooking снимает активное удержание бронирования.
// Повторный вызов и отсутствие удержания не являются ошибкой: возвращается false.
func (m *Manager) ReleaseForBooking(ctx context.Context, bookingID string) (bool, error) {
	affected, err := m.holdRepo.ReleaseByBookingID(ctx, bookingID)
	if err != nil {
		m.logger.Error("ReleaseForBooking: failed to release hold for booking id=%s: %v", bookingID, err)
		return false, fmt.Errorf("%w: ReleaseForBooking - release: %v", ErrInternal, err)
	}

	if affected == 0 {
		return false, nil
	}

	if m.metrics != nil {
		m.metrics.RecordHoldRelease()
	}
	m.logger.Info("ReleaseForBooking: released hold for booking id=%s", bookingID)
	return true, nil
}
