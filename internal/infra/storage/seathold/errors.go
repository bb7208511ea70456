package seathold

import "errors"

var (
	// ErrHoldNotFound возвращается, когда удержание не найдено
	ErrHoldNotFound = errors.New("seathold.repository: seat hold not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("seathold.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("seathold.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("seathold.repository: failed to scan row")
)
