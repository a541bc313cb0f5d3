package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/ports"
)

const DefaultCookieName = "map2map_session"

// SessionCookie describes the HttpOnly cookie carrying the session token.
type SessionCookie struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func (c SessionCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c SessionCookie) Read(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// token returns the cookie token, falling back to a bearer header.
func (c SessionCookie) token(r *http.Request) string {
	if t := c.Read(r); t != "" {
		return t
	}
	return bearerToken(r)
}

// Authenticate resolves the session (if any) and stores the user in the
// request context. It never rejects a request; failures leave it signed out.
func Authenticate(svc ports.AuthService, cookie SessionCookie, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookie.token(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := svc.Check(r.Context(), token)
			if err != nil {
				if !errors.Is(err, auth.ErrUnauthenticated) {
					logger.ErrorContext(r.Context(), "auth check failed", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// RequireUser answers 401 for requests Authenticate could not sign in.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userFrom(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, auth.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
