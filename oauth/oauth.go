// Package oauth provides a thin authorization-code exchange adapter for
// third-party identity providers. It turns a provider's code into a neutral
// Identity the host application unifies into its own user records; provider
// quirks beyond the userinfo endpoint stay with the host.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Identity is what an exchange yields: who the provider says the user is.
type Identity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}

// Provider wraps an oauth2.Config plus the provider's userinfo endpoint.
type Provider struct {
	name        string
	cfg         *oauth2.Config
	userInfoURL string
}

func NewProvider(name string, cfg *oauth2.Config, userInfoURL string) *Provider {
	return &Provider{name: name, cfg: cfg, userInfoURL: userInfoURL}
}

// AuthCodeURL returns the provider URL to redirect the user to. The state
// value is the host's CSRF token.
func (p *Provider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

// Exchange redeems an authorization code for an access token and resolves the
// user's identity from the provider's userinfo endpoint.
func (p *Provider) Exchange(ctx context.Context, code string) (*Identity, error) {
	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth code exchange: %w", err)
	}

	resp, err := p.cfg.Client(ctx, tok).Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("oauth userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth userinfo request: status %d", resp.StatusCode)
	}

	var info struct {
		Sub   string `json:"sub"`
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("oauth userinfo decode: %w", err)
	}

	subject := info.Sub
	if subject == "" {
		subject = info.ID
	}
	if subject == "" {
		return nil, fmt.Errorf("oauth userinfo: provider returned no subject")
	}

	return &Identity{
		Provider: p.name,
		Subject:  subject,
		Email:    info.Email,
		Name:     info.Name,
	}, nil
}
