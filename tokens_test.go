package authkit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(repo *fakeRepo, lookup UserLookupFunc) *TokenService {
	access := NewAccessTokenService([]byte("secret"), "10m")
	refresh := NewRefreshTokenService(repo, lookup, time.Hour)
	return NewTokenService(access, refresh)
}

func TestGenerate_ReturnsPair(t *testing.T) {
	repo := newFakeRepo()
	svc := newTokenService(repo, userExists(true, nil))

	pair, err := svc.Generate(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// The access token decodes back to the same subject.
	claims, err := NewAccessTokenService([]byte("secret"), "10m").Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	// The refresh record landed in storage.
	rec, ok := repo.records[pair.RefreshToken]
	require.True(t, ok)
	assert.Equal(t, "user-1", rec.UserID)
}

func TestGenerate_RefreshFailureShortCircuits(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("db down")
	svc := newTokenService(repo, userExists(true, nil))

	_, err := svc.Generate(context.Background(), "user-1")
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, CodeRefreshTokenCreateFail, opErr.Code)
}

func TestRefresh_RotatesAndRevokesOldToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTokenService(repo, userExists(true, nil))
	ctx := context.Background()

	pair, err := svc.Generate(ctx, "user-1")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	assert.NotEmpty(t, next.AccessToken)

	// The redeemed token is burned: replaying it fails.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)

	// The new token keeps working.
	_, err = svc.Refresh(ctx, next.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_EmptyTokenRejectedBeforeRepo(t *testing.T) {
	repo := newFakeRepo()
	svc := newTokenService(repo, userExists(true, nil))

	_, err := svc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
	assert.Zero(t, repo.findCalls, "empty token must be rejected without touching storage")
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc := newTokenService(newFakeRepo(), userExists(true, nil))

	_, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestLogout_ThenRefreshFails(t *testing.T) {
	repo := newFakeRepo()
	svc := newTokenService(repo, userExists(true, nil))
	ctx := context.Background()

	pair, err := svc.Generate(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestLogout_RevocationFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.revokeErr = errors.New("db down")
	svc := newTokenService(repo, userExists(true, nil))

	err := svc.Logout(context.Background(), "tok")
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, CodeRefreshTokenRevokeFail, opErr.Code)
}
