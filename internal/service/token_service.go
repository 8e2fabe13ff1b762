package service

import (
	"fmt"
	"time"

	"banking-ledger/config"
	"banking-ledger/internal/core/domain"
	"banking-ledger/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTTokenService implements ports.TokenService using HS256 JWT.
// Access and refresh tokens share the signing key and differ in the
// "typ" claim and their lifetime.
type JWTTokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(cfg config.JWTConfig) *JWTTokenService {
	return &JWTTokenService{
		secret:        []byte(cfg.Secret),
		accessExpiry:  cfg.AccessExpiry,
		refreshExpiry: cfg.RefreshExpiry,
		issuer:        cfg.Issuer,
	}
}

// IssueAccess creates a signed short-lived access token for the user.
func (s *JWTTokenService) IssueAccess(user *domain.User) (string, time.Time, error) {
	return s.issue(user, ports.TokenKindAccess, s.accessExpiry)
}

// IssueRefresh creates a signed long-lived refresh token for the user.
func (s *JWTTokenService) IssueRefresh(user *domain.User) (string, time.Time, error) {
	return s.issue(user, ports.TokenKindRefresh, s.refreshExpiry)
}

func (s *JWTTokenService) issue(user *domain.User, kind ports.TokenKind, expiry time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiry)

	// jti makes every token unique even when two are minted for the same
	// user within the same second; refresh rotation depends on it.
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", user.ID),
		"jti":      uuid.NewString(),
		"username": user.Username,
		"role":     string(user.Role),
		"typ":      string(kind),
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"iss":      s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses and validates a JWT token, returning the claims.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("missing subject claim")
	}

	var userID int64
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	typ, _ := claims["typ"].(string)

	return &ports.TokenClaims{
		UserID:   userID,
		Username: username,
		Role:     domain.Role(role),
		Kind:     ports.TokenKind(typ),
	}, nil
}
