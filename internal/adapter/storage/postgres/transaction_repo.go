package postgres

import (
	"context"
	"fmt"

	"banking-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Append inserts a ledger entry within a database transaction. The BIGSERIAL
// id and the store-assigned timestamp come back via RETURNING.
func (r *TransactionRepo) Append(ctx context.Context, tx pgx.Tx, senderID, receiverID int64, amount decimal.Decimal, txType domain.TransactionType) (*domain.Transaction, error) {
	query := `INSERT INTO transactions (sender_id, receiver_id, amount, type)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`

	t := &domain.Transaction{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Type:       txType,
	}
	err := tx.QueryRow(ctx, query, senderID, receiverID, amount, txType).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

// HistoryFor fetches every transaction touching the user, newest first.
// Ties on created_at break by id descending so ordering is deterministic.
func (r *TransactionRepo) HistoryFor(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	query := `SELECT id, sender_id, receiver_id, amount, type, created_at
		FROM transactions WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var history []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(&t.ID, &t.SenderID, &t.ReceiverID, &t.Amount, &t.Type, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		history = append(history, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return history, nil
}
