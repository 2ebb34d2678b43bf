package authkit

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmirnov/authkit/logging"
)

func testConfig(log logging.Logger) Config {
	return Config{
		Secret:              []byte("secret"),
		AccessTokenLifetime: "10m",
		RefreshTokenTTL:     time.Hour,
		RefreshTokens:       newFakeRepo(),
		UserLookup:          userExists(true, nil),
		Logger:              log,
	}
}

func TestContainer_CachesInstances(t *testing.T) {
	c := New(testConfig(logging.NewNopLogger()))

	first, err := c.Tokens()
	require.NoError(t, err)
	second, err := c.Tokens()
	require.NoError(t, err)
	assert.Same(t, first, second, "accessor must return the cached instance")

	access1, err := c.AccessTokens()
	require.NoError(t, err)
	access2, err := c.AccessTokens()
	require.NoError(t, err)
	assert.Same(t, access1, access2)
}

func TestContainer_ResetRebuilds(t *testing.T) {
	c := New(testConfig(logging.NewNopLogger()))

	before, err := c.Tokens()
	require.NoError(t, err)

	c.Reset()

	after, err := c.Tokens()
	require.NoError(t, err)
	assert.NotSame(t, before, after, "reset must discard cached instances")
}

func TestContainer_TokensBuildsDependencies(t *testing.T) {
	c := New(testConfig(logging.NewNopLogger()))

	_, err := c.Tokens()
	require.NoError(t, err)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.NotNil(t, c.access)
	assert.NotNil(t, c.refresh)
}

func TestContainer_OneTimeInitLog(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	c := New(testConfig(log))

	_, err := c.Tokens()
	require.NoError(t, err)
	_, err = c.Tokens()
	require.NoError(t, err)
	_, err = c.AccessTokens()
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "service=access_tokens"))
	assert.Equal(t, 1, strings.Count(out, "service=refresh_tokens"))
	assert.Equal(t, 1, strings.Count(out, "service=auth_tokens"))

	// After a reset the notices fire again.
	buf.Reset()
	c.Reset()
	_, err = c.Tokens()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "service=auth_tokens"))
}

func TestContainer_NotConfigured(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		cfg := testConfig(logging.NewNopLogger())
		cfg.Secret = nil
		c := New(cfg)

		_, err := c.Tokens()
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("missing repository", func(t *testing.T) {
		cfg := testConfig(logging.NewNopLogger())
		cfg.RefreshTokens = nil
		c := New(cfg)

		_, err := c.RefreshTokens()
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestContainer_EndToEnd(t *testing.T) {
	c := New(testConfig(logging.NewNopLogger()))

	tokens, err := c.Tokens()
	require.NoError(t, err)

	ctx := t.Context()
	pair, err := tokens.Generate(ctx, "user-1")
	require.NoError(t, err)

	next, err := tokens.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, tokens.Logout(ctx, next.RefreshToken))

	_, err = tokens.Refresh(ctx, next.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
}
