package auth

import (
	"errors"
	"time"
)

var (
	// ErrUnauthenticated is returned by the session probe for any request that is not signed in.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidState means the OAuth state was unknown, expired or already used.
	ErrInvalidState    = errors.New("invalid oauth state")
	ErrSessionNotFound = errors.New("session not found")
	ErrUserNotFound    = errors.New("user not found")
)

// Session is a server-side login session. The signed token handed to the
// browser only references it by ID.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewSession(id, userID string, now time.Time, ttl time.Duration) Session {
	return Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s Session) Validate() error {
	if s.ID == "" {
		return errors.New("session id is required")
	}
	if s.UserID == "" {
		return errors.New("user id is required")
	}
	if !s.ExpiresAt.After(s.CreatedAt) {
		return errors.New("expiry must be after creation")
	}
	return nil
}
