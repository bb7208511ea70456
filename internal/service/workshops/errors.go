package workshops

import "errors"

var (
	// ErrWorkshopNotFound возвращается, когда мастер-класс не найден
	ErrWorkshopNotFound = errors.New("workshops: workshop not found")

	// ErrWorkshopInUse возвращается при удалении мастер-класса со слотами
	ErrWorkshopInUse = errors.New("workshops: workshop has slots")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("workshops: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("workshops: internal error")
)
