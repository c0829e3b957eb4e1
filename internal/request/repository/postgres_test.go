package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consite/inventory-service/internal/model"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestApproveAppliesInventoryInSameTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE inventory_requests`).
		WithArgs(int64(7), model.RequestApproved, int64(1), sqlmock.AnyArg(), model.RequestPending).
		WillReturnRows(sqlmock.NewRows([]string{"location_id", "product_id", "quantity"}).
			AddRow(10, 100, 25))
	mock.ExpectExec(`INSERT INTO inventory`).
		WithArgs(int64(10), int64(100), int64(25), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	applied, err := repo.Approve(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveLostRaceAppliesNothing(t *testing.T) {
	repo, mock := newMockRepo(t)

	// the conditional update matched no PENDING row: no upsert runs
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE inventory_requests`).
		WithArgs(int64(7), model.RequestApproved, int64(1), sqlmock.AnyArg(), model.RequestPending).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	applied, err := repo.Approve(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRollsBackWhenUpsertFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE inventory_requests`).
		WithArgs(int64(7), model.RequestApproved, int64(1), sqlmock.AnyArg(), model.RequestPending).
		WillReturnRows(sqlmock.NewRows([]string{"location_id", "product_id", "quantity"}).
			AddRow(10, 100, 25))
	mock.ExpectExec(`INSERT INTO inventory`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	applied, err := repo.Approve(context.Background(), 7, 1)
	require.Error(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
