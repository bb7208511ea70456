package domain

import "errors"

var (
	// ErrSlotUnavailable слот заморожен администратором (HELD)
	ErrSlotUnavailable = errors.New("domain: slot is not available for booking")

	// ErrSlotCancelled слот отменён
	ErrSlotCancelled = errors.New("domain: slot is cancelled")

	// ErrInvalidSlotStatus неизвестный статус слота
	ErrInvalidSlotStatus = errors.New("domain: invalid slot status")

	// ErrInvalidBookingStatus неизвестный статус бронирования
	ErrInvalidBookingStatus = errors.New("domain: invalid booking status")

	// ErrInvalidTransition переход между статусами не разрешён
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)
