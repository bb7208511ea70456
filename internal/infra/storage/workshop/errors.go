package workshop

import "errors"

var (
	// ErrWorkshopNotFound возвращается, когда мастер-класс не найден
	ErrWorkshopNotFound = errors.New("workshop.repository: workshop not found")

	// ErrWorkshopInUse возвращается при удалении мастер-класса, у которого есть слоты
	ErrWorkshopInUse = errors.New("workshop.repository: workshop has slots")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("workshop.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("workshop.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("workshop.repository: failed to scan row")
)
