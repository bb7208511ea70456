package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

const (
	pgForeignKeyViolation = "23503"

	onConflictKey = "ON CONFLICT (workshop_id, date, time)"
	returning     = "RETURNING id, workshop_id, date, time, capacity, duration_minutes, status, created_at, updated_at"
)

var columns = []string{
	"id",
	"workshop_id",
	"date",
	"time",
	"capacity",
	"duration_minutes",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertIfAbsent создаёт слот, если слота с тем же (workshop_id, date, time) ещё нет.
// Параллельные вставки одного ключа сходятся к одной строке: проигравшая ждёт
// фиксации первой и ничего не делает. Сам слот затем читается через GetByKey.
func (r *Repository) InsertIfAbsent(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertBuilder(slot).
		Suffix(onConflictKey + " DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: InsertIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return ErrWorkshopNotFound
		}
		return fmt.Errorf("%w: InsertIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Upsert создаёт слот или обновляет существующий с тем же ключом.
// При keepDuration длительность существующего слота не меняется.
func (r *Repository) Upsert(ctx context.Context, slot *domain.Slot, keepDuration bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	update := "capacity = EXCLUDED.capacity, status = EXCLUDED.status, updated_at = NOW()"
	if !keepDuration {
		update += ", duration_minutes = EXCLUDED.duration_minutes"
	}

	query, args, err := insertBuilder(slot).
		Suffix(onConflictKey + " DO UPDATE SET " + update + " " + returning).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	saved, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return saved, nil
}

// GetByID получает слот по ID.
// Внутри транзакции строка блокируется (FOR UPDATE): это сериализует
// параллельные заявки на один слот.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByKey получает слот по (workshop_id, date, time), с блокировкой внутри транзакции
func (r *Repository) GetByKey(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	return r.getOne(ctx, "GetByKey", squirrel.Eq{
		"workshop_id": key.WorkshopID,
		"date":        key.Date.Format(domain.DateFormat),
		"time":        key.Time,
	})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Eq) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("slots").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, method, err)
	}

	return slot, nil
}

// List возвращает слоты по фильтру, упорядоченные по дате и времени
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("slots").
		OrderBy("date ASC", "time ASC")

	if filter.WorkshopID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"workshop_id": *filter.WorkshopID})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": filter.DateFrom.Format(domain.DateFormat)})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": filter.DateTo.Format(domain.DateFormat)})
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

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrExecQuery, err)
	}

	return slots, nil
}

// Update сохраняет статус, вместимость и длительность слота
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", slot.Status).
		Set("capacity", slot.Capacity).
		Set("duration_minutes", slot.DurationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
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
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот. Бронирования и удержания слота должны быть удалены
// раньше в той же транзакции.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func insertBuilder(slot *domain.Slot) squirrel.InsertBuilder {
	return psqlbuilder.Insert("slots").
		Columns(
			"id",
			"workshop_id",
			"date",
			"time",
			"capacity",
			"duration_minutes",
			"status",
		).
		Values(
			slot.ID,
			slot.WorkshopID,
			slot.Date.Format(domain.DateFormat),
			slot.Time,
			slot.Capacity,
			slot.DurationMinutes,
			slot.Status,
		)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot

	err := row.Scan(
		&slot.ID,
		&slot.WorkshopID,
		&slot.Date,
		&slot.Time,
		&slot.Capacity,
		&slot.DurationMinutes,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	y, m, d := slot.Date.Date()
	slot.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &slot, nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation
}
