package service

import (
	"context"
	"errors"
	"fmt"

	"banking-ledger/internal/core/domain"
	"banking-ledger/internal/core/ports"
	"banking-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.LedgerService. Every money movement runs
// inside a single database transaction with pessimistic row locks, so the
// balance update and the ledger entry commit together or not at all.
type LedgerServiceImpl struct {
	userRepo   ports.UserRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	userRepo ports.UserRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		userRepo:   userRepo,
		txRepo:     txRepo,
		transactor: transactor,
		log:        log,
	}
}

// Register creates a user with a zero balance. The password arrives already
// hashed; the ledger never sees plaintext credentials.
func (s *LedgerServiceImpl) Register(ctx context.Context, username, passwordHash, role string) (*domain.User, error) {
	normalized, err := domain.NormalizeRole(role)
	if err != nil {
		return nil, apperror.ErrInvalidRole()
	}

	user := domain.NewUser(username, passwordHash, normalized)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, ports.ErrDuplicateUsername) {
			return nil, apperror.ErrUsernameTaken()
		}
		return nil, apperror.InternalError(fmt.Errorf("create user: %w", err))
	}

	s.log.Info().
		Int64("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("user registered")

	return user, nil
}

// Deposit credits the user's balance and appends a DEPOSIT entry atomically.
func (s *LedgerServiceImpl) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	user, err := s.userRepo.GetByIDForUpdate(ctx, dbTx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound()
	}

	if err := user.ApplyBalanceDelta(amount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("apply deposit: %w", err))
	}

	if err := s.userRepo.UpdateBalance(ctx, dbTx, user.ID, user.Balance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	txn, err := s.txRepo.Append(ctx, dbTx, user.ID, user.ID, amount, domain.TransactionTypeDeposit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Int64("tx_id", txn.ID).
		Int64("user_id", userID).
		Str("amount", amount.String()).
		Msg("deposit applied")

	return txn, nil
}

// Withdraw debits the user's balance and appends a WITHDRAW entry atomically.
// The debit is refused if it would drive the balance negative.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	user, err := s.userRepo.GetByIDForUpdate(ctx, dbTx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound()
	}

	if user.Balance.LessThan(amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := user.ApplyBalanceDelta(amount.Neg()); err != nil {
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := s.userRepo.UpdateBalance(ctx, dbTx, user.ID, user.Balance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	txn, err := s.txRepo.Append(ctx, dbTx, user.ID, user.ID, amount, domain.TransactionTypeWithdraw)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Int64("tx_id", txn.ID).
		Int64("user_id", userID).
		Str("amount", amount.String()).
		Msg("withdrawal applied")

	return txn, nil
}

// Transfer moves funds between two users atomically. Both rows are locked in
// ascending id order so two opposing transfers cannot deadlock.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (*domain.Transaction, error) {
	if fromID == toID {
		return nil, apperror.ErrSelfTransfer()
	}
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := s.userRepo.GetByIDForUpdate(ctx, dbTx, firstID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock user %d: %w", firstID, err))
	}
	second, err := s.userRepo.GetByIDForUpdate(ctx, dbTx, secondID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock user %d: %w", secondID, err))
	}

	sender, receiver := first, second
	if firstID != fromID {
		sender, receiver = second, first
	}
	if sender == nil {
		return nil, apperror.ErrSenderNotFound()
	}
	if receiver == nil {
		return nil, apperror.ErrReceiverNotFound()
	}

	if sender.Balance.LessThan(amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := sender.ApplyBalanceDelta(amount.Neg()); err != nil {
		return nil, apperror.ErrInsufficientFunds()
	}
	if err := receiver.ApplyBalanceDelta(amount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("apply credit: %w", err))
	}

	if err := s.userRepo.UpdateBalance(ctx, dbTx, sender.ID, sender.Balance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update sender balance: %w", err))
	}
	if err := s.userRepo.UpdateBalance(ctx, dbTx, receiver.ID, receiver.Balance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update receiver balance: %w", err))
	}

	txn, err := s.txRepo.Append(ctx, dbTx, fromID, toID, amount, domain.TransactionTypeTransfer)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Int64("tx_id", txn.ID).
		Int64("from", fromID).
		Int64("to", toID).
		Str("amount", amount.String()).
		Msg("transfer applied")

	return txn, nil
}

// GetAccount returns the user's current balance and full transaction history,
// newest first.
func (s *LedgerServiceImpl) GetAccount(ctx context.Context, userID int64) (*ports.AccountStatement, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound()
	}

	history, err := s.txRepo.HistoryFor(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load history: %w", err))
	}

	return &ports.AccountStatement{
		Balance: user.Balance,
		History: history,
	}, nil
}

// GetByUsername fetches a user by exact username. Returns nil, nil on a miss.
func (s *LedgerServiceImpl) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user by username: %w", err))
	}
	return user, nil
}

// HasAnyUsers reports whether at least one user exists. The first admin
// registration is only open while this is false.
func (s *LedgerServiceImpl) HasAnyUsers(ctx context.Context) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("count users: %w", err))
	}
	return count > 0, nil
}
