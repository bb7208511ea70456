package workshop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

const pgForeignKeyViolation = "23503"

var columns = []string{
	"id",
	"title",
	"description",
	"duration_minutes",
	"capacity_per_slot",
	"result",
	"price",
	"image_url",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий мастер-классов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастер-классов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет мастер-класс
func (r *Repository) Create(ctx context.Context, w *domain.Workshop) (*domain.Workshop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("workshops").
		Columns(
			"id",
			"title",
			"description",
			"duration_minutes",
			"capacity_per_slot",
			"result",
			"price",
			"image_url",
			"is_active",
		).
		Values(
			w.ID,
			w.Title,
			w.Description,
			w.DurationMinutes,
			w.CapacityPerSlot,
			w.Result,
			w.Price,
			w.ImageURL,
			w.IsActive,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return w, nil
}

// GetByID получает мастер-класс по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Workshop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("workshops").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scanWorkshop(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkshopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan workshop: %v", ErrScanRow, err)
	}

	return w, nil
}

// List возвращает мастер-классы по названию; onlyActive скрывает выключенные
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.Workshop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("workshops").
		OrderBy("title ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	workshops := make([]*domain.Workshop, 0)
	for rows.Next() {
		w, err := scanWorkshop(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan workshop: %v", ErrScanRow, err)
		}
		workshops = append(workshops, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrExecQuery, err)
	}

	return workshops, nil
}

// Update сохраняет все изменяемые поля мастер-класса
func (r *Repository) Update(ctx context.Context, w *domain.Workshop) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("workshops").
		Set("title", w.Title).
		Set("description", w.Description).
		Set("duration_minutes", w.DurationMinutes).
		Set("capacity_per_slot", w.CapacityPerSlot).
		Set("result", w.Result).
		Set("price", w.Price).
		Set("image_url", w.ImageURL).
		Set("is_active", w.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": w.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrWorkshopNotFound
	}

	return nil
}

// Delete удаляет мастер-класс. Если на него ссылаются слоты, возвращает ErrWorkshopInUse.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("workshops").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return ErrWorkshopInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrWorkshopNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkshop(row rowScanner) (*domain.Workshop, error) {
	var (
		w        domain.Workshop
		imageURL sql.NullString
	)

	err := row.Scan(
		&w.ID,
		&w.Title,
		&w.Description,
		&w.DurationMinutes,
		&w.CapacityPerSlot,
		&w.Result,
		&w.Price,
		&imageURL,
		&w.IsActive,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		w.ImageURL = &imageURL.String
	}

	return &w, nil
}
