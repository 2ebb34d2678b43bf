// Package authkit is a pluggable authentication toolkit: signed access
// tokens, revocable opaque refresh tokens with rotation, and an orchestration
// service over both. Persistence, user lookup, password hashing, and OAuth2
// exchange are collaborators behind narrow interfaces; adapters ship under
// store/, password/, and oauth/.
package authkit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dsmirnov/authkit/logging"
)

// Config holds everything the token services need. It is supplied once, at
// container construction.
type Config struct {
	// Secret is the HMAC key for signing access tokens.
	Secret []byte

	// AccessTokenLifetime is a duration string such as "10m". Empty means
	// DefaultAccessTokenLifetime.
	AccessTokenLifetime string

	// RefreshTokenTTL is how long a refresh token stays valid. Zero means
	// DefaultRefreshTokenTTL.
	RefreshTokenTTL time.Duration

	// RefreshTokens is the storage backend for refresh-token records.
	RefreshTokens RefreshTokenRepository

	// UserLookup confirms that a token's owning user still exists. Optional;
	// when nil the check is skipped.
	UserLookup UserLookupFunc

	// Logger receives one-time service-initialization notices. Optional;
	// when nil a default slog sink is used.
	Logger logging.Logger
}

func (c *Config) validate() error {
	if len(c.Secret) == 0 {
		return fmt.Errorf("%w: missing signing secret", ErrNotConfigured)
	}
	if c.RefreshTokens == nil {
		return fmt.Errorf("%w: missing refresh token repository", ErrNotConfigured)
	}
	return nil
}

// Container is the composition root for the token services. Each service is
// built lazily on first access and cached for the container's lifetime; an
// informational log line is emitted once per service. It replaces the usual
// ambient-singleton pattern with an explicit value the host passes around.
type Container struct {
	mu  sync.Mutex
	cfg Config
	log logging.Logger

	access    *AccessTokenService
	refresh   *RefreshTokenService
	tokens    *TokenService
	announced map[string]bool
}

func New(cfg Config) *Container {
	log := cfg.Logger
	if log == nil {
		log = logging.NewDefaultLogger()
	}
	return &Container{
		cfg:       cfg,
		log:       log,
		announced: make(map[string]bool),
	}
}

// AccessTokens returns the cached access token service, building it on first
// call. It fails if the container configuration is incomplete.
func (c *Container) AccessTokens() (*AccessTokenService, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessLocked()
}

// RefreshTokens returns the cached refresh token service, building it on
// first call.
func (c *Container) RefreshTokens() (*RefreshTokenService, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked()
}

// Tokens returns the cached orchestration service, transitively building the
// access and refresh services if needed.
func (c *Container) Tokens() (*TokenService, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tokens != nil {
		return c.tokens, nil
	}

	access, err := c.accessLocked()
	if err != nil {
		return nil, err
	}
	refresh, err := c.refreshLocked()
	if err != nil {
		return nil, err
	}

	c.tokens = NewTokenService(access, refresh)
	c.announce("auth_tokens")
	return c.tokens, nil
}

// Reset discards every materialized service and the one-time log guards, but
// keeps the stored configuration. Test hook: the next accessor call rebuilds
// and re-announces.
func (c *Container) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.access = nil
	c.refresh = nil
	c.tokens = nil
	c.announced = make(map[string]bool)
}

func (c *Container) accessLocked() (*AccessTokenService, error) {
	if c.access != nil {
		return c.access, nil
	}
	if err := c.cfg.validate(); err != nil {
		return nil, err
	}
	c.access = NewAccessTokenService(c.cfg.Secret, c.cfg.AccessTokenLifetime)
	c.announce("access_tokens")
	return c.access, nil
}

func (c *Container) refreshLocked() (*RefreshTokenService, error) {
	if c.refresh != nil {
		return c.refresh, nil
	}
	if err := c.cfg.validate(); err != nil {
		return nil, err
	}
	c.refresh = NewRefreshTokenService(c.cfg.RefreshTokens, c.cfg.UserLookup, c.cfg.RefreshTokenTTL)
	c.announce("refresh_tokens")
	return c.refresh, nil
}

// announce logs the first construction of a service. Subsequent builds of the
// same service (before a Reset) stay silent.
func (c *Container) announce(name string) {
	if c.announced[name] {
		return
	}
	c.announced[name] = true
	c.log.Info(context.Background(), "service initialized", "service", name)
}
