package authkit

import (
	"context"
	"errors"
	"time"

	"github.com/dsmirnov/authkit/randx"
)

// RefreshTokenBytes is the entropy of an opaque refresh token. 40 bytes of
// randomness make collisions infeasible, so uniqueness is by construction.
const RefreshTokenBytes = 40

// DefaultRefreshTokenTTL is used when the configuration leaves the refresh
// token lifetime zero.
const DefaultRefreshTokenTTL = 30 * 24 * time.Hour

// RefreshTokenService issues, verifies, and revokes long-lived opaque tokens
// backed by a RefreshTokenRepository.
type RefreshTokenService struct {
	repo   RefreshTokenRepository
	lookup UserLookupFunc
	ttl    time.Duration

	now func() time.Time
}

func NewRefreshTokenService(repo RefreshTokenRepository, lookup UserLookupFunc, ttl time.Duration) *RefreshTokenService {
	if ttl <= 0 {
		ttl = DefaultRefreshTokenTTL
	}
	return &RefreshTokenService{
		repo:   repo,
		lookup: lookup,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create mints a fresh opaque token for userID and persists its record. The
// expiry window starts at the time of the call, not at service construction.
func (s *RefreshTokenService) Create(ctx context.Context, userID string) (*RefreshToken, error) {
	opaque, err := randx.Token(RefreshTokenBytes)
	if err != nil {
		return nil, NewOpError(CodeRefreshTokenCreateFail, err)
	}

	rec, err := s.repo.Create(ctx, &RefreshToken{
		UserID:    userID,
		Token:     opaque,
		ExpiresAt: s.now().Add(s.ttl),
	})
	if err != nil {
		return nil, NewOpError(CodeRefreshTokenCreateFail, err)
	}

	return rec, nil
}

// Verify resolves an opaque token back to its owning user id. Unknown,
// expired, and revoked tokens — and tokens whose user no longer exists — all
// fail with ErrRefreshTokenInvalid so the caller cannot tell which condition
// applied. Infrastructure failures are wrapped with a stable code.
func (s *RefreshTokenService) Verify(ctx context.Context, tokenStr string) (string, error) {
	rec, err := s.repo.Find(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrRefreshTokenInvalid
		}
		return "", NewOpError(CodeRefreshTokenVerifyFail, err)
	}

	if !rec.Usable(s.now()) {
		return "", ErrRefreshTokenInvalid
	}

	if s.lookup != nil {
		exists, err := s.lookup(ctx, rec.UserID)
		if err != nil {
			return "", NewOpError(CodeRefreshTokenVerifyFail, err)
		}
		if !exists {
			return "", ErrRefreshTokenInvalid
		}
	}

	return rec.UserID, nil
}

// Revoke permanently invalidates the record matching tokenStr. Revoking an
// already-revoked token succeeds and preserves the original timestamp;
// revoking an unknown token fails (wrapped ErrNotFound).
func (s *RefreshTokenService) Revoke(ctx context.Context, tokenStr string) error {
	if err := s.repo.Revoke(ctx, tokenStr, s.now()); err != nil {
		return NewOpError(CodeRefreshTokenRevokeFail, err)
	}
	return nil
}
