// Package redisstore provides a Redis-backed refresh-token repository. Each
// record lives under a prefixed key with a TTL equal to its remaining
// lifetime, so natural expiry is handled by Redis itself.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dsmirnov/authkit"
)

const defaultKeyPrefix = "authkit:refresh:"

type Store struct {
	client    *redis.Client
	keyPrefix string
}

type Option func(*Store)

// WithKeyPrefix overrides the default "authkit:refresh:" key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) { s.keyPrefix = prefix }
}

func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, keyPrefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// record is the stored JSON shape. RevokedAt stays in the value rather than
// deleting the key, so a revoked token remains distinguishable from an
// unknown one until it expires naturally.
type record struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (s *Store) key(token string) string { return s.keyPrefix + token }

func (s *Store) Create(ctx context.Context, rec *authkit.RefreshToken) (*authkit.RefreshToken, error) {
	now := time.Now()
	ttl := rec.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return nil, fmt.Errorf("refresh token already expired at creation")
	}

	stored := record{
		ID:        uuid.NewString(),
		UserID:    rec.UserID,
		Token:     rec.Token,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}

	if err := s.client.Set(ctx, s.key(rec.Token), payload, ttl).Err(); err != nil {
		return nil, fmt.Errorf("redis set: %w", err)
	}

	return stored.toModel(), nil
}

func (s *Store) Find(ctx context.Context, token string) (*authkit.RefreshToken, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, authkit.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("redis record decode: %w", err)
	}

	return rec.toModel(), nil
}

func (s *Store) Revoke(ctx context.Context, token string, at time.Time) error {
	key := s.key(token)

	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return authkit.ErrNotFound
		}
		return fmt.Errorf("redis get: %w", err)
	}

	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return fmt.Errorf("redis record decode: %w", err)
	}

	if rec.RevokedAt != nil {
		return nil
	}

	stamp := at
	rec.RevokedAt = &stamp
	rec.UpdatedAt = at

	updated, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	// KeepTTL preserves the key's natural expiry.
	if err := s.client.Set(ctx, key, updated, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// DeleteExpired is a no-op for Redis: keys carry a TTL and expire on their
// own. It exists to satisfy the repository contract.
func (s *Store) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func (r *record) toModel() *authkit.RefreshToken {
	out := &authkit.RefreshToken{
		ID:        r.ID,
		UserID:    r.UserID,
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.RevokedAt != nil {
		stamp := *r.RevokedAt
		out.RevokedAt = &stamp
	}
	return out
}

var _ authkit.RefreshTokenRepository = (*Store)(nil)
