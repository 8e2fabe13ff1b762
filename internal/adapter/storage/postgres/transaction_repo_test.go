package postgres

import (
	"context"
	"testing"
	"time"

	"banking-ledger/internal/core/domain"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transactionColumns() []string {
	return []string{"id", "sender_id", "receiver_id", "amount", "type", "created_at"}
}

func TestTransactionRepo_Append(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	amount := decimal.RequireFromString("120.00")
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), int64(2), amount, domain.TransactionTypeTransfer).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), createdAt))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	entry, err := repo.Append(context.Background(), tx, 1, 2, amount, domain.TransactionTypeTransfer)
	require.NoError(t, err)
	assert.Equal(t, int64(5), entry.ID)
	assert.Equal(t, int64(1), entry.SenderID)
	assert.Equal(t, int64(2), entry.ReceiverID)
	assert.True(t, amount.Equal(entry.Amount))
	assert.Equal(t, domain.TransactionTypeTransfer, entry.Type)
	assert.Equal(t, createdAt, entry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_HistoryFor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)

	rows := pgxmock.NewRows(transactionColumns()).
		AddRow(int64(2), int64(1), int64(2), decimal.RequireFromString("120.00"), domain.TransactionTypeTransfer, now).
		AddRow(int64(1), int64(1), int64(1), decimal.RequireFromString("300.00"), domain.TransactionTypeDeposit, now.Add(-time.Minute))

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE sender_id").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	history, err := repo.HistoryFor(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.TransactionTypeTransfer, history[0].Type)
	assert.Equal(t, domain.TransactionTypeDeposit, history[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_HistoryFor_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE sender_id").
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows(transactionColumns()))

	history, err := repo.HistoryFor(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.NoError(t, mock.ExpectationsWereMet())
}
