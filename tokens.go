package authkit

import "context"

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService composes the access and refresh services into the session
// operations a host application calls: Generate, Refresh, Logout.
type TokenService struct {
	access  *AccessTokenService
	refresh *RefreshTokenService
}

func NewTokenService(access *AccessTokenService, refresh *RefreshTokenService) *TokenService {
	return &TokenService{access: access, refresh: refresh}
}

// Generate mints a new refresh/access pair for userID. The refresh record is
// created first; if that fails the access token is never generated.
func (s *TokenService) Generate(ctx context.Context, userID string) (*TokenPair, error) {
	rec, err := s.refresh.Create(ctx, userID)
	if err != nil {
		return nil, err
	}

	access, err := s.access.Generate(userID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: rec.Token}, nil
}

// Refresh redeems a refresh token for a brand-new pair, revoking the redeemed
// token so it cannot be replayed. An empty token is rejected before any
// repository call.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenInvalid
	}

	userID, err := s.refresh.Verify(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, ErrRefreshTokenInvalid
	}

	// Burn the old token before issuing the new pair. Failing closed here is
	// what makes rotation replay-safe.
	if err := s.refresh.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.Generate(ctx, userID)
}

// Logout revokes the given refresh token. Revocation failures propagate
// unchanged.
func (s *TokenService) Logout(ctx context.Context, refreshToken string) error {
	return s.refresh.Revoke(ctx, refreshToken)
}
