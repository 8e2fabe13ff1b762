package service

import (
	"context"
	"fmt"
	"time"

	"banking-ledger/internal/core/domain"
	"banking-ledger/internal/core/ports"
	"banking-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService. It owns no ledger state;
// it hashes credentials, resolves identities and issues token pairs.
type AuthServiceImpl struct {
	ledger       ports.LedgerService
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
	refreshStore ports.RefreshTokenStore
	log          zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	ledger ports.LedgerService,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	refreshStore ports.RefreshTokenStore,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		ledger:       ledger,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		refreshStore: refreshStore,
		log:          log,
	}
}

// Register hashes the password and creates the account through the ledger.
func (s *AuthServiceImpl) Register(ctx context.Context, username, rawPassword, role string) (*domain.User, error) {
	passwordHash, err := s.hashSvc.Hash(rawPassword)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}
	return s.ledger.Register(ctx, username, passwordHash, role)
}

// Login validates credentials and returns an access/refresh token pair.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, username, rawPassword string) (*ports.TokenPair, error) {
	user, err := s.ledger.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	if !s.hashSvc.Matches(rawPassword, user.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials()
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("user_id", user.ID).
		Msg("user logged in")

	return pair, nil
}

// Refresh validates a refresh token and rotates the session: the old token
// is revoked and a brand new pair is issued.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.tokenSvc.Validate(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken()
	}
	if claims.Kind != ports.TokenKindRefresh {
		return nil, apperror.ErrInvalidToken()
	}

	live, err := s.refreshStore.Validate(ctx, refreshToken, claims.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check refresh token: %w", err))
	}
	if !live {
		return nil, apperror.ErrInvalidToken()
	}

	// Re-read the user so role changes take effect on refresh.
	user, err := s.ledger.GetByUsername(ctx, claims.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken()
	}

	if err := s.refreshStore.Revoke(ctx, refreshToken); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("revoke refresh token: %w", err))
	}

	return s.issuePair(ctx, user)
}

// Logout revokes the refresh token. Revoking an unknown token succeeds.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshStore.Revoke(ctx, refreshToken); err != nil {
		return apperror.InternalError(fmt.Errorf("revoke refresh token: %w", err))
	}
	return nil
}

func (s *AuthServiceImpl) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	accessToken, accessExpiry, err := s.tokenSvc.IssueAccess(user)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("issue access token: %w", err))
	}

	refreshToken, refreshExpiry, err := s.tokenSvc.IssueRefresh(user)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("issue refresh token: %w", err))
	}

	if err := s.refreshStore.Save(ctx, refreshToken, user.ID, time.Until(refreshExpiry)); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save refresh token: %w", err))
	}

	return &ports.TokenPair{
		AccessToken:   accessToken,
		AccessExpiry:  accessExpiry,
		RefreshToken:  refreshToken,
		RefreshExpiry: refreshExpiry,
	}, nil
}
