package workshop

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil, "test")), mock
}

func TestRepository_List_OnlyActive(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM workshops WHERE is_active = $1 ORDER BY title ASC")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("w1", "Гончарный круг", "", 120, 6, "", 3500, nil, true, now, now))

	workshops, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, workshops, 1)

	assert.Equal(t, 6, workshops[0].CapacityPerSlot)
	assert.Nil(t, workshops[0].ImageURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_InUse(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM workshops WHERE id = $1")).
		WithArgs("w1").
		WillReturnError(&pq.Error{Code: pgForeignKeyViolation})

	require.ErrorIs(t, repo.Delete(context.Background(), "w1"), ErrWorkshopInUse)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM workshops WHERE id").
		WithArgs("w9").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), "w9")
	require.ErrorIs(t, err, ErrWorkshopNotFound)
}
