package workshops

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// WorkshopRepository интерфейс репозитория мастер-классов
type WorkshopRepository interface {
	Create(ctx context.Context, w *domain.Workshop) (*domain.Workshop, error)
	GetByID(ctx context.Context, id string) (*domain.Workshop, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Workshop, error)
	Update(ctx context.Context, w *domain.Workshop) error
	Delete(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
