// Package google adapts Google's OAuth 2.0 / OpenID Connect endpoints to
// ports.IdentityProvider.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/ports"
)

const DefaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

type Provider struct {
	config      *oauth2.Config
	userInfoURL string
}

type Option func(*Provider)

// WithEndpoints points the provider at a different authorization server.
func WithEndpoints(endpoint oauth2.Endpoint, userInfoURL string) Option {
	return func(p *Provider) {
		p.config.Endpoint = endpoint
		p.userInfoURL = userInfoURL
	}
}

func NewProvider(clientID, clientSecret, redirectURL string, opts ...Option) *Provider {
	p := &Provider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: DefaultUserInfoURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ ports.IdentityProvider = (*Provider)(nil)

func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange trades the authorization code for a token and fetches the profile.
func (p *Provider) Exchange(ctx context.Context, code string) (auth.Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("token exchange failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return auth.Identity{}, err
	}
	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return auth.Identity{}, fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, body)
	}

	var identity auth.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return auth.Identity{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return identity, nil
}
