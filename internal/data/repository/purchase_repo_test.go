package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPurchaseRepository_Request(t *testing.T) {
	mock := newMock(t)
	repo := NewPurchaseRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE item SET purchase_type = TRUE").WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO purchase").WithArgs(int64(2), int64(5)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Request(context.Background(), 2, 5))
}

func TestPurchaseRepository_RequestItemTaken(t *testing.T) {
	mock := newMock(t)
	repo := NewPurchaseRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE item SET purchase_type = TRUE").WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Request(context.Background(), 2, 5), ErrItemUnavailable)
}

func TestPurchaseRepository_RequestDuplicatePair(t *testing.T) {
	mock := newMock(t)
	repo := NewPurchaseRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE item SET purchase_type = TRUE").WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO purchase").WithArgs(int64(2), int64(5)).WillReturnError(uniqueErr)
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Request(context.Background(), 2, 5), ErrDuplicate)
}

func TestPurchaseRepository_Complete(t *testing.T) {
	mock := newMock(t)
	repo := NewPurchaseRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE purchase SET complete = TRUE").WithArgs(int64(2), int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE item SET cnt = GREATEST`).WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Complete(context.Background(), 2, 5))
}

func TestPurchaseRepository_CompleteMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewPurchaseRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE purchase SET complete = TRUE").WithArgs(int64(2), int64(5)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Complete(context.Background(), 2, 5), ErrNotFound)
}

func TestPurchaseRepository_ListInProgress(t *testing.T) {
	mock := newMock(t)
	repo := NewPurchaseRepository(mock, zap.NewNop())

	mock.ExpectQuery("JOIN purchase p").WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(summaryCols).AddRow(int64(5), "camera", 10000, time.Now(), int64(0), nil))

	items, err := repo.ListInProgress(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].Seq)
}

func TestPurchaseRepository_Find(t *testing.T) {
	mock := newMock(t)
	repo := NewPurchaseRepository(mock, zap.NewNop())
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM purchase").WithArgs(int64(2), int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"user_seq", "item_seq", "start_at", "end_at", "complete"}).
			AddRow(int64(2), int64(5), start, nil, false))

	p, err := repo.Find(context.Background(), 2, 5)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, start, p.StartAt)
	assert.Nil(t, p.EndAt)
	assert.False(t, p.Complete)
}

func TestPurchaseRepository_FindMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewPurchaseRepository(mock, zap.NewNop())

	mock.ExpectQuery("FROM purchase").WithArgs(int64(2), int64(5)).
		WillReturnError(pgx.ErrNoRows)

	p, err := repo.Find(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Nil(t, p)
}
