package rest

import (
	"net/http"
)

// NewRouter initializes the HTTP router and registers routes.
// authenticate attaches the signed-in user (if any); limiter guards /auth/*.
func NewRouter(pages *PageHandler, h *Handler, authH *AuthHandler, authenticate Middleware, limiter *RateLimiter, mws ...Middleware) http.Handler {
	mux := http.NewServeMux()

	limited := func(fn http.HandlerFunc) http.Handler {
		return limiter.Middleware(fn)
	}

	// Auth Routes (Public)
	mux.Handle("GET /auth/login", limited(authH.Login))
	mux.Handle("GET /auth/callback", limited(authH.Callback))
	mux.Handle("GET /auth/check", limited(authH.Check))
	mux.Handle("POST /auth/logout", limited(authH.Logout))

	// API (Protected)
	protected := func(fn http.HandlerFunc) http.Handler {
		return Chain(fn, authenticate, RequireUser)
	}
	mux.Handle("POST /api/chat", protected(h.Chat))
	mux.Handle("GET /api/business", protected(h.Business))

	// Pages
	mux.Handle("GET /{$}", authenticate(http.HandlerFunc(pages.Home)))
	mux.Handle("POST /ask", authenticate(http.HandlerFunc(pages.Ask)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/", pages.NotFound)

	// Wrap with middleware
	return Chain(mux, mws...)
}
