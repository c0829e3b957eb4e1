package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consite/inventory-service/internal/inventory"
	"github.com/consite/inventory-service/internal/model"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func transferParams() inventory.TransferParams {
	return inventory.TransferParams{
		SourceInventoryID: 1,
		SourceLocationID:  10,
		TargetLocationID:  20,
		ProductID:         100,
		Quantity:          3,
		ActorID:           1,
		AuditDetails:      "Moved 3 bag of Cement",
	}
}

func TestTransferCommitsBothHalves(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE inventory`).
		WithArgs(int64(1), int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory`).
		WithArgs(int64(20), int64(100), int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_logs`).
		WithArgs(int64(1), model.AuditAssetTransfer, "Product:100", "Moved 3 bag of Cement", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	applied, err := repo.Transfer(context.Background(), transferParams())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferInsufficientSourceSkipsTarget(t *testing.T) {
	repo, mock := newMockRepo(t)

	// the guarded decrement matched nothing: no upsert, no audit row
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE inventory`).
		WithArgs(int64(1), int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	applied, err := repo.Transfer(context.Background(), transferParams())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRollsBackWhenUpsertFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE inventory`).
		WithArgs(int64(1), int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	applied, err := repo.Transfer(context.Background(), transferParams())
	require.Error(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
