package ports

import (
	"context"
	"time"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/domain/business"
)

// UserRepository defines storage for users.
type UserRepository interface {
	// Upsert inserts the user or, when the provider subject is already known,
	// refreshes the profile fields. It returns the stored record.
	Upsert(ctx context.Context, user auth.User) (auth.User, error)
	FindByID(ctx context.Context, id string) (auth.User, error)
}

// BusinessRepository defines read access to business records.
type BusinessRepository interface {
	FindByOwner(ctx context.Context, userID string) (business.Business, error)
}

// SessionStore holds login sessions until they expire.
type SessionStore interface {
	Save(ctx context.Context, session auth.Session) error
	Get(ctx context.Context, id string) (auth.Session, error)
	// Delete is a no-op for unknown sessions.
	Delete(ctx context.Context, id string) error
}

// StateStore keeps one-time OAuth state values between redirect and callback.
type StateStore interface {
	SaveState(ctx context.Context, state string, ttl time.Duration) error
	// ConsumeState reports whether the state existed and removes it.
	ConsumeState(ctx context.Context, state string) (bool, error)
}
