package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/ports"
)

// StateTTL bounds the time between the redirect to the provider and the callback.
const StateTTL = 10 * time.Minute

type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	states   ports.StateStore
	provider ports.IdentityProvider
	signer   *TokenSigner
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	states ports.StateStore,
	provider ports.IdentityProvider,
	jwtSecret string,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		states:   states,
		provider: provider,
		signer:   NewTokenSigner(jwtSecret),
		ttl:      sessionTTL,
		logger:   logger,
		now:      time.Now,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) BeginLogin(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "AuthService.BeginLogin")
	defer span.End()

	state := uuid.NewString()
	if err := s.states.SaveState(ctx, state, StateTTL); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to store login state: %w", err)
	}
	return s.provider.AuthCodeURL(state), nil
}

func (s *AuthService) CompleteLogin(ctx context.Context, state, code string) (string, auth.User, error) {
	ctx, span := tracer.Start(ctx, "AuthService.CompleteLogin")
	defer span.End()

	if state == "" || code == "" {
		return "", auth.User{}, auth.ErrInvalidState
	}

	ok, err := s.states.ConsumeState(ctx, state)
	if err != nil {
		span.RecordError(err)
		return "", auth.User{}, fmt.Errorf("failed to consume login state: %w", err)
	}
	if !ok {
		span.SetStatus(codes.Error, "unknown state")
		return "", auth.User{}, auth.ErrInvalidState
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		span.RecordError(err)
		return "", auth.User{}, fmt.Errorf("failed to exchange code: %w", err)
	}
	if err := identity.Validate(); err != nil {
		return "", auth.User{}, fmt.Errorf("invalid identity: %w", err)
	}

	user, err := s.users.Upsert(ctx, identity.ToUser(uuid.NewString()))
	if err != nil {
		span.RecordError(err)
		return "", auth.User{}, fmt.Errorf("failed to save user: %w", err)
	}
	span.SetAttributes(attribute.String("user.id", user.ID))

	session := auth.NewSession(uuid.NewString(), user.ID, s.now(), s.ttl)
	if err := s.sessions.Save(ctx, session); err != nil {
		span.RecordError(err)
		return "", auth.User{}, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.signer.Sign(session)
	if err != nil {
		return "", auth.User{}, err
	}

	s.logger.InfoContext(ctx, "user signed in", "user_id", user.ID)
	return token, user, nil
}

func (s *AuthService) Check(ctx context.Context, token string) (auth.User, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Check")
	defer span.End()

	now := s.now()
	claims, err := s.signer.Parse(token, now)
	if err != nil {
		return auth.User{}, fmt.Errorf("%w: %v", auth.ErrUnauthenticated, err)
	}
	span.SetAttributes(attribute.String("session.id", claims.ID))

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return auth.User{}, fmt.Errorf("%w: %v", auth.ErrUnauthenticated, err)
		}
		span.RecordError(err)
		return auth.User{}, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != claims.Subject || session.Expired(now) {
		return auth.User{}, fmt.Errorf("%w: session mismatch or expired", auth.ErrUnauthenticated)
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.User{}, fmt.Errorf("%w: %v", auth.ErrUnauthenticated, err)
		}
		span.RecordError(err)
		return auth.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "AuthService.Logout", trace.WithAttributes(attribute.Bool("token.present", token != "")))
	defer span.End()

	// An expired token still names a session worth deleting.
	claims, err := s.signer.Parse(token, time.Time{})
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.InfoContext(ctx, "user signed out", "user_id", claims.Subject)
	return nil
}
