package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/ports"
)

type Adapter struct {
	client *redis.Client
}

func NewAdapter(addr string) *Adapter {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Adapter{client: rdb}
}

// Ensure Adapter implements the session and state ports
var (
	_ ports.SessionStore = (*Adapter)(nil)
	_ ports.StateStore   = (*Adapter)(nil)
)

const (
	SessionPrefix = "session:"
	StatePrefix   = "oauth_state:"
)

// WaitReady pings the server with exponential backoff.
func (a *Adapter) WaitReady(ctx context.Context, logger *slog.Logger) error {
	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := a.client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis not ready", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (a *Adapter) Close() error {
	return a.client.Close()
}

// Save stores the session until it expires.
func (a *Adapter) Save(ctx context.Context, session auth.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return a.client.Set(ctx, SessionPrefix+session.ID, data, ttl).Err()
}

func (a *Adapter) Get(ctx context.Context, id string) (auth.Session, error) {
	data, err := a.client.Get(ctx, SessionPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, err
	}

	var session auth.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return auth.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}

func (a *Adapter) Delete(ctx context.Context, id string) error {
	return a.client.Del(ctx, SessionPrefix+id).Err()
}

func (a *Adapter) SaveState(ctx context.Context, state string, ttl time.Duration) error {
	return a.client.Set(ctx, StatePrefix+state, "1", ttl).Err()
}

// ConsumeState uses GETDEL so a state can be redeemed exactly once.
func (a *Adapter) ConsumeState(ctx context.Context, state string) (bool, error) {
	err := a.client.GetDel(ctx, StatePrefix+state).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
