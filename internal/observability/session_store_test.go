package observability

import (
	"context"
	"errors"
	"testing"

	"map2map-portal/internal/core/domain/auth"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type stubSessionStore struct {
	sessions map[string]auth.Session
	fail     bool
}

func (s *stubSessionStore) Save(ctx context.Context, session auth.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *stubSessionStore) Get(ctx context.Context, id string) (auth.Session, error) {
	if s.fail {
		return auth.Session{}, errors.New("boom")
	}
	session, ok := s.sessions[id]
	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessionStore) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func TestInstrumentedSessionStore_Get(t *testing.T) {
	inner := &stubSessionStore{sessions: map[string]auth.Session{}}
	store := NewInstrumentedSessionStore(inner)
	ctx := context.Background()

	hits := testutil.ToFloat64(sessionLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(sessionLookups.WithLabelValues("miss"))
	errs := testutil.ToFloat64(sessionLookups.WithLabelValues("error"))

	assert.NoError(t, store.Save(ctx, auth.Session{ID: "s1", UserID: "u1"}))

	_, err := store.Get(ctx, "s1")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	inner.fail = true
	_, err = store.Get(ctx, "s1")
	assert.Error(t, err)

	assert.NoError(t, store.Delete(ctx, "s1"))

	assert.Equal(t, hits+1, testutil.ToFloat64(sessionLookups.WithLabelValues("hit")))
	assert.Equal(t, misses+1, testutil.ToFloat64(sessionLookups.WithLabelValues("miss")))
	assert.Equal(t, errs+1, testutil.ToFloat64(sessionLookups.WithLabelValues("error")))
}

func TestInitTracerProvider_NoEndpoint(t *testing.T) {
	shutdown, err := InitTracerProvider(context.Background(), "portal", "")
	assert.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
