package authkit

import (
	"context"
	"time"
)

// RefreshToken is the persistent record backing a long-lived opaque
// credential. The Token value is the external lookup key; RevokedAt is set at
// most once and never cleared.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Usable reports whether the record may still authenticate: not revoked and
// not past its expiry.
func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}

// RefreshTokenRepository is the storage contract for refresh-token records.
// Adapters live under store/; any SQL, key-value, or in-memory backend that
// satisfies these semantics will do.
type RefreshTokenRepository interface {
	// Create persists a new record and returns it with storage-assigned
	// fields (ID, CreatedAt, UpdatedAt) populated.
	Create(ctx context.Context, rec *RefreshToken) (*RefreshToken, error)

	// Find looks up a record by its opaque token value. A missing record is
	// reported as ErrNotFound.
	Find(ctx context.Context, token string) (*RefreshToken, error)

	// Revoke stamps the record matching token with at. Revoking an unknown
	// token returns ErrNotFound; revoking an already-revoked token is a
	// no-op success and the original RevokedAt is preserved.
	Revoke(ctx context.Context, token string, at time.Time) error

	// DeleteExpired removes records whose expiry precedes before and returns
	// how many were deleted. Housekeeping only; the token services never
	// call it.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// UserLookupFunc reports whether the user with the given id still exists. It
// is supplied by the host application and keeps orphaned refresh tokens from
// authenticating.
type UserLookupFunc func(ctx context.Context, userID string) (bool, error)
