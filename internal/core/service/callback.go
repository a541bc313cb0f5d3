package service

import (
	"context"
	"errors"
	"log/slog"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/ports"
)

const (
	// CallbackFailureMessage is the only error text users ever see from sign-in.
	CallbackFailureMessage = "Authentication failed. Please try again."

	homePath        = "/"
	failureRedirect = "/?error=auth_failed"
)

// CallbackSource names the credential that settled a callback.
type CallbackSource string

const (
	SourceNone     CallbackSource = ""
	SourceCode     CallbackSource = "code"
	SourceCookie   CallbackSource = "cookie"
	SourceBearer   CallbackSource = "bearer"
	SourceProvider CallbackSource = "provider_error"
)

// CallbackInput is everything the callback view can learn from the request.
type CallbackInput struct {
	Code          string
	State         string
	ProviderError string
	SessionToken  string // from the session cookie
	BearerToken   string // from the Authorization header or the token query parameter
}

// CallbackOutcome tells the transport what to do with the browser.
type CallbackOutcome struct {
	Authenticated bool
	Source        CallbackSource
	User          auth.User
	// IssueToken is set when the cookie must be (re)written with this token.
	IssueToken  string
	ClearCookie bool
	Redirect    string
	Err         error
}

// CallbackResolver settles the OAuth callback. A code is tried first, then the
// existing session cookie, then a bearer token. Every outcome lands on "/".
type CallbackResolver struct {
	auth   ports.AuthService
	logger *slog.Logger
}

func NewCallbackResolver(authSvc ports.AuthService, logger *slog.Logger) *CallbackResolver {
	return &CallbackResolver{auth: authSvc, logger: logger}
}

func (r *CallbackResolver) Resolve(ctx context.Context, in CallbackInput) CallbackOutcome {
	ctx, span := tracer.Start(ctx, "CallbackResolver.Resolve")
	defer span.End()

	if in.ProviderError != "" {
		r.logger.WarnContext(ctx, "provider rejected sign-in", "error", in.ProviderError)
		return r.fail(in, SourceProvider, errors.New("provider error: "+in.ProviderError))
	}

	// codeErr is kept when a reused callback URL falls back to the cookie.
	var codeErr error
	if in.Code != "" {
		token, user, err := r.auth.CompleteLogin(ctx, in.State, in.Code)
		switch {
		case err == nil:
			return CallbackOutcome{
				Authenticated: true,
				Source:        SourceCode,
				User:          user,
				IssueToken:    token,
				Redirect:      homePath,
			}
		case errors.Is(err, auth.ErrInvalidState) && in.SessionToken != "":
			r.logger.WarnContext(ctx, "login state already used, checking existing session", "error", err)
			codeErr = err
		default:
			r.logger.ErrorContext(ctx, "auth callback failed", "error", err)
			return r.fail(in, SourceCode, err)
		}
	}

	if in.SessionToken != "" {
		user, err := r.auth.Check(ctx, in.SessionToken)
		if err == nil {
			return CallbackOutcome{Authenticated: true, Source: SourceCookie, User: user, Redirect: homePath}
		}
		if !errors.Is(err, auth.ErrUnauthenticated) {
			r.logger.ErrorContext(ctx, "auth check failed", "error", err)
			return r.fail(in, SourceCookie, err)
		}
	}

	if in.BearerToken != "" {
		user, err := r.auth.Check(ctx, in.BearerToken)
		if err == nil {
			return CallbackOutcome{
				Authenticated: true,
				Source:        SourceBearer,
				User:          user,
				IssueToken:    in.BearerToken,
				Redirect:      homePath,
			}
		}
		r.logger.WarnContext(ctx, "bearer token rejected", "error", err)
		return r.fail(in, SourceBearer, err)
	}

	if codeErr != nil {
		return r.fail(in, SourceCode, codeErr)
	}
	return r.fail(in, SourceNone, auth.ErrUnauthenticated)
}

func (r *CallbackResolver) fail(in CallbackInput, src CallbackSource, err error) CallbackOutcome {
	return CallbackOutcome{
		Source:      src,
		ClearCookie: in.SessionToken != "",
		Redirect:    failureRedirect,
		Err:         err,
	}
}
