package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slots: slot not found")

	// ErrWorkshopNotFound возвращается, когда мастер-класс не найден
	ErrWorkshopNotFound = errors.New("slots: workshop not found")

	// ErrInvalidTransition возвращается при недопустимой смене статуса слота
	ErrInvalidTransition = errors.New("slots: status transition not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
