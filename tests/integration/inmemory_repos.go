package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"banking-ledger/internal/core/domain"
	"banking-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu    sync.RWMutex
	seq   int64
	users map[int64]*domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[int64]*domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return ports.ErrDuplicateUsername
		}
	}
	r.seq++
	u.ID = r.seq
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *inMemoryUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

// GetByIDForUpdate relies on the serializing transactor for isolation: only
// one atomic unit runs at a time, so a plain read stands in for FOR UPDATE.
func (r *inMemoryUserRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryUserRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, userID int64, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %d", userID)
	}
	u.Balance = balance
	return nil
}

func (r *inMemoryUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	seq          int64
	transactions []domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{}
}

func (r *inMemoryTransactionRepo) Append(ctx context.Context, tx pgx.Tx, senderID, receiverID int64, amount decimal.Decimal, txType domain.TransactionType) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t := domain.Transaction{
		ID:         r.seq,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Type:       txType,
		CreatedAt:  time.Now().UTC(),
	}
	r.transactions = append(r.transactions, t)
	return &t, nil
}

func (r *inMemoryTransactionRepo) HistoryFor(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.transactions {
		if t.SenderID == userID || t.ReceiverID == userID {
			result = append(result, t)
		}
	}
	// Newest first, ties broken by id descending
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// --- Serializing Transactor ---

// serializingTransactor grants one atomic unit at a time: Begin takes a
// global lock that Commit or Rollback releases. This mirrors the mutual
// exclusion the real store gets from row locks.
type serializingTransactor struct {
	mu sync.Mutex
}

func newSerializingTransactor() *serializingTransactor {
	return &serializingTransactor{}
}

func (t *serializingTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &memTx{release: t.mu.Unlock}, nil
}

// memTx is a pgx.Tx implementation whose only job is releasing the
// transactor lock exactly once.
type memTx struct {
	noopTx
	once    sync.Once
	release func()
}

func (t *memTx) Commit(ctx context.Context) error {
	t.once.Do(t.release)
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	t.once.Do(t.release)
	return nil
}

// noopTx fills out the rest of pgx.Tx.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
