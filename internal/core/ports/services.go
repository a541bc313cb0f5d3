package ports

import (
	"context"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/domain/business"
)

// IdentityProvider is the external OAuth provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (auth.Identity, error)
}

// AuthService defines the authentication service.
type AuthService interface {
	BeginLogin(ctx context.Context) (redirectURL string, err error)
	CompleteLogin(ctx context.Context, state, code string) (token string, user auth.User, err error)
	// Check is the session probe. It fails with auth.ErrUnauthenticated for
	// anything that is not a live session.
	Check(ctx context.Context, token string) (auth.User, error)
	Logout(ctx context.Context, token string) error
}

// ChatService answers dashboard questions.
type ChatService interface {
	Ask(ctx context.Context, query string) (string, error)
}

// BusinessService looks up the business shown on the dashboard.
type BusinessService interface {
	// ForUser returns nil when the user has no business.
	ForUser(ctx context.Context, userID string) (*business.Business, error)
}
