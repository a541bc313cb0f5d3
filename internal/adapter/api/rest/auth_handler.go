package rest

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"map2map-portal/internal/adapter/web"
	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/ports"
	"map2map-portal/internal/core/service"
	"map2map-portal/internal/observability"
)

var errInternal = errors.New("internal error")

type AuthHandler struct {
	service  ports.AuthService
	resolver *service.CallbackResolver
	renderer *web.Renderer
	cookie   SessionCookie
	logger   *slog.Logger
}

func NewAuthHandler(svc ports.AuthService, resolver *service.CallbackResolver, renderer *web.Renderer, cookie SessionCookie, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  svc,
		resolver: resolver,
		renderer: renderer,
		cookie:   cookie,
		logger:   logger,
	}
}

// Login handles GET /auth/login by redirecting to the identity provider.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	redirect, err := h.service.BeginLogin(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to begin login", "error", err)
		observability.RecordAuthEvent("login", "error")
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}
	observability.RecordAuthEvent("login", "redirect")
	http.Redirect(w, r, redirect, http.StatusFound)
}

// Callback handles GET /auth/callback, the provider's redirect target.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bearer := bearerToken(r)
	if bearer == "" {
		bearer = q.Get("token")
	}

	out := h.resolver.Resolve(r.Context(), service.CallbackInput{
		Code:          q.Get("code"),
		State:         q.Get("state"),
		ProviderError: q.Get("error"),
		SessionToken:  h.cookie.Read(r),
		BearerToken:   bearer,
	})

	switch {
	case out.IssueToken != "":
		h.cookie.Set(w, out.IssueToken)
	case out.ClearCookie:
		h.cookie.Clear(w)
	}

	outcome := "failure"
	if out.Authenticated {
		outcome = "success"
	}
	observability.RecordAuthEvent("callback_"+string(out.Source), outcome)

	if err := h.renderer.Callback(w, http.StatusOK, web.CallbackPage{Redirect: out.Redirect}); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render callback", "error", err)
		http.Redirect(w, r, out.Redirect, http.StatusFound)
	}
}

// Check handles GET /auth/check: 200 with the user, 401 otherwise.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	user, err := h.service.Check(r.Context(), h.cookie.token(r))
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, auth.ErrUnauthenticated)
			return
		}
		h.logger.ErrorContext(r.Context(), "session probe failed", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	if err := writeJSON(w, http.StatusOK, checkResponse{User: user}); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// Logout handles POST /auth/logout. Browser form posts are sent back to "/".
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), h.cookie.token(r)); err != nil {
		h.logger.ErrorContext(r.Context(), "logout failed", "error", err)
		observability.RecordAuthEvent("logout", "error")
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}
	h.cookie.Clear(w)
	observability.RecordAuthEvent("logout", "success")

	if isFormPost(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkResponse struct {
	User auth.User `json:"user"`
}

func isFormPost(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && (mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data")
}
