package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	seatholdRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/seathold"
	slotRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
)

// Service сервис администрирования бронирований
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	holdRepo     SeatHoldRepository
	holds        HoldManager
	ledger       CapacityLedger
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	holdRepo SeatHoldRepository,
	holds HoldManager,
	ledger CapacityLedger,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		holdRepo:     holdRepo,
		holds:        holds,
		ledger:       ledger,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// List возвращает бронирования по фильтру, новые первыми, вместе со слотом и удержанием
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings workshop=%v status=%v", req.WorkshopID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - bookings: %v", ErrInternal, err)
	}

	result := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(list))}
	if len(list) == 0 {
		return result, nil
	}

	// Слоты по тому же фильтру покрывают все найденные бронирования
	slots, err := s.slotRepo.List(ctx, req.SlotFilter())
	if err != nil {
		s.logger.Error("List: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: List - slots: %v", ErrInternal, err)
	}
	slotByID := make(map[string]*domain.Slot, len(slots))
	for _, slot := range slots {
		slotByID[slot.ID] = slot
	}

	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ID)
	}
	holds, err := s.holdRepo.ListByBookingIDs(ctx, ids)
	if err != nil {
		s.logger.Error("List: failed to list seat holds: %v", err)
		return nil, fmt.Errorf("%w: List - holds: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	for _, b := range list {
		result.Bookings = append(result.Bookings, models.FromDomainBooking(b, slotByID[b.SlotID], holds[b.ID], now))
	}

	s.logger.Info("List: successfully fetched %d bookings", len(result.Bookings))
	return result, nil
}

// Approve одобряет заявку сверх вместимости: PENDING_ADMIN -> CONFIRMED
func (s *Service) Approve(ctx context.Context, id string) (*models.BookingResponse, error) {
	return s.apply(ctx, id, domain.ActionApprove)
}

// Reject отклоняет заявку: PENDING_ADMIN -> REJECTED
func (s *Service) Reject(ctx context.Context, id string) (*models.BookingResponse, error) {
	return s.apply(ctx, id, domain.ActionReject)
}

// Confirm принудительно подтверждает бронирование
func (s *Service) Confirm(ctx context.Context, id string) (*models.BookingResponse, error) {
	return s.apply(ctx, id, domain.ActionConfirm)
}

// Cancel отменяет бронирование, освобождая его места
func (s *Service) Cancel(ctx context.Context, id string) (*models.BookingResponse, error) {
	return s.apply(ctx, id, domain.ActionCancel)
}

// apply меняет статус и снимает удержание в одной транзакции.
// Повтор действия над бронированием в целевом статусе ничего не меняет.
func (s *Service) apply(ctx context.Context, id string, action domain.BookingAction) (*models.BookingResponse, error) {
	s.logger.Info("Booking %s: id=%s", action, id)

	var (
		booking *domain.Booking
		slot    *domain.Slot
		hold    *domain.SeatHold
		tr      domain.Transition
	)

	// Слот блокируется раньше бронирования, как и при удалении слота
	current, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		slot, err = s.lockSlot(txCtx, current.SlotID)
		if err != nil {
			return err
		}

		booking, err = s.getBooking(txCtx, id)
		if err != nil {
			return err
		}

		tr, err = booking.Apply(action)
		if err != nil {
			s.logger.Warn("Booking %s: id=%s rejected in status %s", action, id, booking.Status)
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		if tr.Changed {
			if err := s.bookingRepo.UpdateStatus(txCtx, id, tr.To); err != nil {
				s.logger.Error("Booking %s: failed to update status id=%s: %v", action, id, err)
				return fmt.Errorf("%w: %s - update status: %v", ErrInternal, action, err)
			}

			if tr.ReleaseHold {
				if _, err := s.holds.ReleaseForBooking(txCtx, id); err != nil {
					return fmt.Errorf("%w: %s - release hold: %v", ErrInternal, action, err)
				}
			}
		}

		if tr.Changed && tr.To == domain.BookingConfirmed {
			s.checkOversubscription(txCtx, slot, booking)
		}

		hold, err = s.holdRepo.GetByBookingID(txCtx, id)
		if err != nil {
			if !errors.Is(err, seatholdRepo.ErrHoldNotFound) {
				return fmt.Errorf("%w: %s - get hold: %v", ErrInternal, action, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()

	if tr.Changed {
		s.logger.Info("Booking %s: id=%s %s -> %s", action, id, tr.From, tr.To)
		if s.notifier != nil {
			event := notifications.NewBookingEvent(booking, slot, nil, now)
			event.PreviousStatus = string(tr.From)
			s.notifier.BookingStatusChanged(ctx, event)
		}
	} else {
		s.logger.Info("Booking %s: id=%s already %s", action, id, booking.Status)
	}

	resp := models.FromDomainBooking(booking, slot, hold, now)
	return &resp, nil
}

// checkOversubscription подтверждение не перепроверяет вместимость,
// но превышение фиксируется в логе и метрике
func (s *Service) checkOversubscription(ctx context.Context, slot *domain.Slot, booking *domain.Booking) {
	availability, err := s.ledger.ForSlot(ctx, slot)
	if err != nil {
		s.logger.Warn("Booking confirm: failed to compute availability for slot id=%s: %v", slot.ID, err)
		return
	}

	if availability.Oversubscribed() {
		s.logger.Warn("Booking confirm: slot id=%s oversubscribed by booking id=%s: capacity=%d booked=%d held=%d",
			slot.ID, booking.ID, availability.Capacity, availability.BookedSeats, availability.HeldSeats)
		if s.metrics != nil {
			s.metrics.RecordOversubscribed()
		}
	}
}

// Delete удаляет бронирование, предварительно сняв его удержание
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting booking id=%s", id)

	current, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.lockSlot(txCtx, current.SlotID); err != nil {
			return err
		}

		if _, err := s.getBooking(txCtx, id); err != nil {
			return err
		}

		if _, err := s.holds.ReleaseForBooking(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - release hold: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted booking id=%s", id)
	return nil
}

// lockSlot блокирует слот бронирования.
// Слот без строки означает, что его удалили вместе с бронированиями.
func (s *Service) lockSlot(ctx context.Context, slotID string) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Slot id=%s not found", slotID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Slot id=%s: repository error: %v", slotID, err)
		return nil, fmt.Errorf("%w: lock slot: %v", ErrInternal, err)
	}
	return slot, nil
}

// getBooking читает бронирование, в транзакции с блокировкой строки
func (s *Service) getBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Booking id=%s: repository error: %v", id, err)
		return nil, fmt.Errorf("%w: get booking: %v", ErrInternal, err)
	}
	return booking, nil
}
