package seatholds

import "errors"

var (
	// ErrInvalidBooking возвращается при попытке удержать места не под PENDING_ADMIN заявку
	ErrInvalidBooking = errors.New("seatholds: booking is not awaiting admin decision")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("seatholds: internal error")
)
