package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/slot"
	workshopRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
)

// UseCase use case допуска публичной заявки на бронирование
type UseCase struct {
	workshopRepo WorkshopRepository
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	ledger       CapacityLedger
	holds        HoldManager
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	workshopRepo WorkshopRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	ledger CapacityLedger,
	holds HoldManager,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		workshopRepo: workshopRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		holds:        holds,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute принимает заявку: находит или создаёт слот, считает свободные места
// и сохраняет бронирование CONFIRMED либо PENDING_ADMIN с удержанием мест.
//
// Транзакция блокирует строку слота (SELECT ... FOR UPDATE), поэтому
// конкурентные заявки в один слот решаются последовательно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%q, workshop=%q, date=%q, time=%q",
		req.SlotID, req.WorkshopID, req.Date, req.Time)

	// 1. Валидация входных данных
	cmd, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		slot     *domain.Slot
		workshop *domain.Workshop
		booking  *domain.Booking
		hold     *domain.SeatHold
	)

	// 2. Решение и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Находим слот (с блокировкой), при необходимости создаём
		slot, workshop, err = uc.resolveSlot(txCtx, cmd)
		if err != nil {
			return err
		}

		// 2.2. Статус слота проверяется до подсчёта мест
		if err := slot.CheckAdmissible(); err != nil {
			uc.logger.Warn("CreateBooking: slot id=%s status=%s rejects bookings", slot.ID, slot.Status)
			if errors.Is(err, domain.ErrSlotCancelled) {
				return ErrSlotCancelled
			}
			if errors.Is(err, domain.ErrSlotUnavailable) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: CheckAdmissible: %v", ErrInternal, err)
		}

		// 2.3. Свободные места с учётом активных удержаний
		availability, err := uc.ledger.ForSlot(txCtx, slot)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute availability for slot id=%s: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
		}

		status := domain.DecideAdmission(cmd.participants, availability.FreeSeats)
		uc.logger.Info("CreateBooking: slot id=%s capacity=%d booked=%d held=%d free=%d participants=%d -> %s",
			slot.ID, availability.Capacity, availability.BookedSeats, availability.HeldSeats,
			availability.FreeSeats, cmd.participants, status)

		// 2.4. Сохраняем бронирование
		booking, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			ID:           uuid.NewString(),
			WorkshopID:   slot.WorkshopID,
			SlotID:       slot.ID,
			Name:         cmd.name,
			Phone:        cmd.phone,
			Messenger:    cmd.messenger,
			Participants: cmd.participants,
			Comment:      cmd.comment,
			Status:       status,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking in slot id=%s: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 2.5. Заявка сверх вместимости удерживает места до решения администратора
		if status == domain.BookingPendingAdmin {
			hold, err = uc.holds.PlaceOverflowHold(txCtx, booking)
			if err != nil {
				return fmt.Errorf("%w: failed to place seat hold: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s status=%s", booking.ID, booking.Status)

	if uc.metrics != nil {
		uc.metrics.RecordAdmission(string(booking.Status))
	}

	resp := &Response{
		ID:           booking.ID,
		SlotID:       booking.SlotID,
		WorkshopID:   booking.WorkshopID,
		Status:       string(booking.Status),
		Participants: booking.Participants,
		Message:      MessageConfirmed,
	}
	if hold != nil {
		resp.Message = MessageOverflow
		resp.HoldExpiresAt = hold.ExpiresAt
	}

	if uc.notifier != nil {
		event := notifications.NewBookingEvent(booking, slot, workshop, uc.timeProvider.Now())
		event.HoldExpiresAt = resp.HoldExpiresAt
		uc.notifier.BookingAdmitted(ctx, event)
	}

	return resp, nil
}

// resolveSlot возвращает заблокированный слот заявки.
// Тройка (мастер-класс, дата, время) без слота порождает OPEN слот с параметрами мастер-класса.
func (uc *UseCase) resolveSlot(ctx context.Context, cmd *command) (*domain.Slot, *domain.Workshop, error) {
	if cmd.bySlotID() {
		slot, err := uc.slotRepo.GetByID(ctx, cmd.slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%s not found", cmd.slotID)
				return nil, nil, ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", cmd.slotID, err)
			return nil, nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		workshop, err := uc.workshopRepo.GetByID(ctx, slot.WorkshopID)
		if err != nil {
			// Название мастер-класса нужно только для уведомления
			uc.logger.Warn("CreateBooking: failed to get workshop id=%s for slot id=%s: %v", slot.WorkshopID, slot.ID, err)
		}
		return slot, workshop, nil
	}

	workshop, err := uc.workshopRepo.GetByID(ctx, cmd.workshopID)
	if err != nil {
		if errors.Is(err, workshopRepo.ErrWorkshopNotFound) {
			uc.logger.Warn("CreateBooking: workshop id=%s not found", cmd.workshopID)
			return nil, nil, ErrWorkshopNotFound
		}
		uc.logger.Error("CreateBooking: failed to get workshop id=%s: %v", cmd.workshopID, err)
		return nil, nil, fmt.Errorf("%w: failed to get workshop: %v", ErrInternal, err)
	}

	candidate := domain.NewSlotForWorkshop(uuid.NewString(), workshop, cmd.date, cmd.time)
	if err := uc.slotRepo.InsertIfAbsent(ctx, candidate); err != nil {
		if errors.Is(err, slotRepo.ErrWorkshopNotFound) {
			return nil, nil, ErrWorkshopNotFound
		}
		uc.logger.Error("CreateBooking: failed to ensure slot %s %s %s: %v",
			cmd.workshopID, cmd.date.Format(domain.DateFormat), cmd.time, err)
		return nil, nil, fmt.Errorf("%w: failed to ensure slot: %v", ErrInternal, err)
	}

	slot, err := uc.slotRepo.GetByKey(ctx, candidate.Key())
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get slot %s %s %s: %v",
			cmd.workshopID, cmd.date.Format(domain.DateFormat), cmd.time, err)
		return nil, nil, fmt.Errorf("%w: failed to get slot by key: %v", ErrInternal, err)
	}

	return slot, workshop, nil
}
