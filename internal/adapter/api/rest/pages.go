package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"map2map-portal/internal/adapter/web"
	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/domain/chat"
	"map2map-portal/internal/core/ports"
	"map2map-portal/internal/core/service"
)

const chatUnavailable = "The assistant is unavailable right now."

// PageHandler serves the HTML views.
type PageHandler struct {
	renderer *web.Renderer
	chat     ports.ChatService
	business ports.BusinessService
	logger   *slog.Logger
}

func NewPageHandler(renderer *web.Renderer, chatSvc ports.ChatService, businessSvc ports.BusinessService, logger *slog.Logger) *PageHandler {
	return &PageHandler{renderer: renderer, chat: chatSvc, business: businessSvc, logger: logger}
}

// Home handles GET /: the dashboard when signed in, the login page otherwise.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		page := web.LoginPage{LoginURL: "/auth/login"}
		if r.URL.Query().Get("error") != "" {
			page.Error = service.CallbackFailureMessage
		}
		h.render(r, h.renderer.Login(w, http.StatusOK, page))
		return
	}

	h.render(r, h.renderer.Dashboard(w, http.StatusOK, h.dashboard(r, user)))
}

// Ask handles the dashboard's chatbot form (POST /ask).
func (h *PageHandler) Ask(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	page := h.dashboard(r, user)
	page.Query = r.PostFormValue("query")

	reply, err := h.chat.Ask(r.Context(), page.Query)
	switch {
	case err == nil:
		page.ChatResponse = reply
	case errors.Is(err, chat.ErrEmptyQuery):
		// blank questions are ignored
	default:
		h.logger.WarnContext(r.Context(), "chat failed", "error", err)
		page.ChatError = chatUnavailable
	}

	h.render(r, h.renderer.Dashboard(w, http.StatusOK, page))
}

// NotFound sends unknown paths back to the root.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *PageHandler) dashboard(r *http.Request, user auth.User) web.DashboardPage {
	page := web.DashboardPage{User: user}
	b, err := h.business.ForUser(r.Context(), user.ID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to load business", "user_id", user.ID, "error", err)
	}
	page.Business = b
	return page
}

func (h *PageHandler) render(r *http.Request, err error) {
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page", "path", r.URL.Path, "error", err)
	}
}
