// Package memstore provides an in-memory refresh-token repository. It is
// useful for tests and for embedding the toolkit without external storage.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dsmirnov/authkit"
)

type Store struct {
	mu      sync.RWMutex
	byToken map[string]*authkit.RefreshToken
}

func New() *Store {
	return &Store{byToken: make(map[string]*authkit.RefreshToken)}
}

func (s *Store) Create(ctx context.Context, rec *authkit.RefreshToken) (*authkit.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stored := *rec
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.byToken[stored.Token] = &stored

	out := stored
	return &out, nil
}

func (s *Store) Find(ctx context.Context, token string) (*authkit.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byToken[token]
	if !ok {
		return nil, authkit.ErrNotFound
	}

	out := *rec
	return &out, nil
}

func (s *Store) Revoke(ctx context.Context, token string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byToken[token]
	if !ok {
		return authkit.ErrNotFound
	}
	if rec.RevokedAt == nil {
		stamp := at
		rec.RevokedAt = &stamp
		rec.UpdatedAt = at
	}
	return nil
}

func (s *Store) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for token, rec := range s.byToken {
		if rec.ExpiresAt.Before(before) {
			delete(s.byToken, token)
			n++
		}
	}
	return n, nil
}

var _ authkit.RefreshTokenRepository = (*Store)(nil)
