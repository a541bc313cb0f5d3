package observability

import (
	"context"
	"errors"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/ports"
)

// InstrumentedSessionStore is a decorator that records lookup hits and misses.
type InstrumentedSessionStore struct {
	inner ports.SessionStore
}

func NewInstrumentedSessionStore(inner ports.SessionStore) *InstrumentedSessionStore {
	return &InstrumentedSessionStore{inner: inner}
}

func (s *InstrumentedSessionStore) Save(ctx context.Context, session auth.Session) error {
	return s.inner.Save(ctx, session)
}

func (s *InstrumentedSessionStore) Delete(ctx context.Context, id string) error {
	return s.inner.Delete(ctx, id)
}

func (s *InstrumentedSessionStore) Get(ctx context.Context, id string) (auth.Session, error) {
	session, err := s.inner.Get(ctx, id)
	switch {
	case err == nil:
		sessionLookups.WithLabelValues("hit").Inc()
	case errors.Is(err, auth.ErrSessionNotFound):
		sessionLookups.WithLabelValues("miss").Inc()
	default:
		sessionLookups.WithLabelValues("error").Inc()
	}
	return session, err
}
