package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RefreshTokenStore implements ports.RefreshTokenStore using Redis.
// Only a digest of the token is stored, never the token itself.
type RefreshTokenStore struct {
	client *goredis.Client
	prefix string
}

// NewRefreshTokenStore creates a new Redis-backed refresh token store.
func NewRefreshTokenStore(client *goredis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{
		client: client,
		prefix: "refresh:",
	}
}

func (s *RefreshTokenStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return s.prefix + hex.EncodeToString(sum[:])
}

// Save records a live refresh token for the user. The TTL must match the
// token's own expiry so the session dies with it.
func (s *RefreshTokenStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	err := s.client.Set(ctx, s.key(token), strconv.FormatInt(userID, 10), ttl).Err()
	if err != nil {
		return fmt.Errorf("redis refresh save: %w", err)
	}
	return nil
}

// Validate reports whether the token is still live for the given user.
// A missing key means the session was revoked or expired.
func (s *RefreshTokenStore) Validate(ctx context.Context, token string, userID int64) (bool, error) {
	val, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if err == goredis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis refresh get: %w", err)
	}
	return val == strconv.FormatInt(userID, 10), nil
}

// Revoke deletes the token entry. Revoking an unknown token is a no-op.
func (s *RefreshTokenStore) Revoke(ctx context.Context, token string) error {
	err := s.client.Del(ctx, s.key(token)).Err()
	if err != nil {
		return fmt.Errorf("redis refresh revoke: %w", err)
	}
	return nil
}
