package ports

import (
	"context"
	"errors"

	"banking-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrDuplicateUsername is returned by UserRepository.Create when the username
// is already taken (case-sensitive exact match).
var ErrDuplicateUsername = errors.New("username already exists")

// UserRepository defines persistence operations for user accounts.
// Methods accepting pgx.Tx run inside transaction blocks and rely on
// pessimistic row locking.
type UserRepository interface {
	// Create inserts the user and fills in its generated ID.
	// Returns ErrDuplicateUsername on a username collision.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, userID int64, balance decimal.Decimal) error
	Count(ctx context.Context) (int64, error)
}

// TransactionRepository defines persistence for the append-only transaction log.
type TransactionRepository interface {
	// Append inserts a ledger entry and returns it with the store-assigned
	// monotonically increasing ID and timestamp.
	Append(ctx context.Context, tx pgx.Tx, senderID, receiverID int64, amount decimal.Decimal, txType domain.TransactionType) (*domain.Transaction, error)
	// HistoryFor lists every transaction where the user is sender or
	// receiver, newest first (ties broken by ID descending).
	HistoryFor(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
