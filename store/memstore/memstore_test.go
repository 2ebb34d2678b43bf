package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmirnov/authkit"
)

func TestCreateAndFind(t *testing.T) {
	s := New()
	ctx := context.Background()

	rec, err := s.Create(ctx, &authkit.RefreshToken{
		UserID:    "user-1",
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	found, err := s.Find(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", found.UserID)
	assert.Nil(t, found.RevokedAt)
}

func TestFind_Missing(t *testing.T) {
	s := New()

	_, err := s.Find(context.Background(), "absent")
	assert.ErrorIs(t, err, authkit.ErrNotFound)
}

func TestRevoke(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, &authkit.RefreshToken{
		UserID:    "user-1",
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	first := time.Now()
	require.NoError(t, s.Revoke(ctx, "tok-1", first))

	rec, err := s.Find(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, rec.RevokedAt)
	assert.Equal(t, first, *rec.RevokedAt)

	// Second revocation keeps the original stamp.
	require.NoError(t, s.Revoke(ctx, "tok-1", first.Add(time.Minute)))
	rec, err = s.Find(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, first, *rec.RevokedAt)

	assert.ErrorIs(t, s.Revoke(ctx, "absent", time.Now()), authkit.ErrNotFound)
}

func TestDeleteExpired(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	for _, rec := range []*authkit.RefreshToken{
		{UserID: "u", Token: "stale-1", ExpiresAt: now.Add(-2 * time.Hour)},
		{UserID: "u", Token: "stale-2", ExpiresAt: now.Add(-time.Minute)},
		{UserID: "u", Token: "live", ExpiresAt: now.Add(time.Hour)},
	} {
		_, err := s.Create(ctx, rec)
		require.NoError(t, err)
	}

	n, err := s.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = s.Find(ctx, "stale-1")
	assert.ErrorIs(t, err, authkit.ErrNotFound)
	_, err = s.Find(ctx, "live")
	assert.NoError(t, err)
}
