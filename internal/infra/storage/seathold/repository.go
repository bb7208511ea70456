package seathold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"slot_id",
	"booking_id",
	"participants_held",
	"reason",
	"expires_at",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий удержаний мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория удержаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет удержание
func (r *Repository) Create(ctx context.Context, hold *domain.SeatHold) (*domain.SeatHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("seat_holds").
		Columns(
			"id",
			"slot_id",
			"booking_id",
			"participants_held",
			"reason",
			"expires_at",
			"status",
		).
		Values(
			hold.ID,
			hold.SlotID,
			hold.BookingID,
			hold.ParticipantsHeld,
			hold.Reason,
			hold.ExpiresAt,
			hold.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&hold.CreatedAt, &hold.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return hold, nil
}

// GetByBookingID возвращает удержание бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) (*domain.SeatHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("seat_holds").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	hold, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan hold: %v", ErrScanRow, err)
	}

	return hold, nil
}

// ListByBookingIDs возвращает удержания бронирований, ключ - ID бронирования
func (r *Repository) ListByBookingIDs(ctx context.Context, bookingIDs []string) (map[string]*domain.SeatHold, error) {
	result := make(map[string]*domain.SeatHold, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("seat_holds").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		hold, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBookingIDs - scan hold: %v", ErrScanRow, err)
		}
		if hold.BookingID != nil {
			result[*hold.BookingID] = hold
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBookingIDs - rows iteration: %v", ErrExecQuery, err)
	}

	return result, nil
}

// ReleaseByBookingID переводит активное удержание бронирования в RELEASED.
// Условие на статус делает операцию идемпотентной: повторный вызов вернёт 0.
func (r *Repository) ReleaseByBookingID(ctx context.Context, bookingID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("seat_holds").
		Set("status", domain.HoldReleased).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"status": domain.HoldActive}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBookingID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBookingID - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBookingID - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// DeleteBySlotID удаляет все удержания слота
func (r *Repository) DeleteBySlotID(ctx context.Context, slotID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("seat_holds").
		Where(squirrel.Eq{"slot_id": slotID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySlotID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySlotID - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySlotID - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// SumActiveBySlotIDs суммирует места активных неистёкших на момент now удержаний по слотам
func (r *Repository) SumActiveBySlotIDs(ctx context.Context, slotIDs []string, now time.Time) (map[string]int, error) {
	result := make(map[string]int, len(slotIDs))
	if len(slotIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_id", "COALESCE(SUM(participants_held), 0)").
		From("seat_holds").
		Where(squirrel.Eq{"slot_id": slotIDs}).
		Where(squirrel.Eq{"status": domain.HoldActive}).
		Where(squirrel.Or{
			squirrel.Eq{"expires_at": nil},
			squirrel.Gt{"expires_at": now},
		}).
		GroupBy("slot_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SumActiveBySlotIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SumActiveBySlotIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			slotID string
			seats  int
		)
		if err := rows.Scan(&slotID, &seats); err != nil {
			return nil, fmt.Errorf("%w: SumActiveBySlotIDs - scan row: %v", ErrScanRow, err)
		}
		result[slotID] = seats
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SumActiveBySlotIDs - rows iteration: %v", ErrExecQuery, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHold(row rowScanner) (*domain.SeatHold, error) {
	var (
		hold      domain.SeatHold
		bookingID sql.NullString
		expiresAt sql.NullTime
	)

	err := row.Scan(
		&hold.ID,
		&hold.SlotID,
		&bookingID,
		&hold.ParticipantsHeld,
		&hold.Reason,
		&expiresAt,
		&hold.Status,
		&hold.CreatedAt,
		&hold.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bookingID.Valid {
		hold.BookingID = &bookingID.String
	}
	if expiresAt.Valid {
		hold.ExpiresAt = &expiresAt.Time
	}

	return &hold, nil
}
