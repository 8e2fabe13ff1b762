package ports

import (
	"context"
	"time"

	"banking-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// HashService handles password hashing.
type HashService interface {
	Hash(password string) (string, error)
	Matches(password string, hash string) bool
}

// TokenKind distinguishes access from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims holds the parsed identity carried by a JWT.
type TokenClaims struct {
	UserID   int64
	Username string
	Role     domain.Role
	Kind     TokenKind
}

// TokenService handles JWT issuance and validation.
type TokenService interface {
	IssueAccess(user *domain.User) (string, time.Time, error)
	IssueRefresh(user *domain.User) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// RefreshTokenStore tracks live refresh tokens so sessions can be revoked.
type RefreshTokenStore interface {
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// Validate reports whether the token is still live for the given user.
	Validate(ctx context.Context, token string, userID int64) (bool, error)
	Revoke(ctx context.Context, token string) error
}

// --- Service Ports (Business Logic) ---

// AccountStatement is the result of a balance-and-history query.
type AccountStatement struct {
	Balance decimal.Decimal
	History []domain.Transaction
}

// LedgerService is the core of the system: it enforces money-movement
// invariants and guarantees that a balance change and its transaction record
// are applied together or not at all.
type LedgerService interface {
	// Register creates a user with a zero balance. The password is hashed by
	// the credential component before it reaches the ledger.
	Register(ctx context.Context, username, passwordHash, role string) (*domain.User, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Transaction, error)
	Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (*domain.Transaction, error)
	GetAccount(ctx context.Context, userID int64) (*AccountStatement, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	HasAnyUsers(ctx context.Context) (bool, error)
}

// TokenPair is what a successful login or refresh hands back to the caller.
type TokenPair struct {
	AccessToken   string
	AccessExpiry  time.Time
	RefreshToken  string
	RefreshExpiry time.Time
}

// AuthService defines the authentication gateway. It owns no ledger state;
// it resolves identities and issues tokens.
type AuthService interface {
	Register(ctx context.Context, username, rawPassword, role string) (*domain.User, error)
	Login(ctx context.Context, username, rawPassword string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}
