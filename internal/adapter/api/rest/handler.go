package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"map2map-portal/internal/core/domain/business"
	"map2map-portal/internal/core/domain/chat"
	"map2map-portal/internal/core/ports"
	"map2map-portal/internal/observability"
)

// Handler serves the JSON API used by the dashboard.
type Handler struct {
	chat     ports.ChatService
	business ports.BusinessService
	logger   *slog.Logger
}

func NewHandler(chatSvc ports.ChatService, businessSvc ports.BusinessService, logger *slog.Logger) *Handler {
	return &Handler{chat: chatSvc, business: businessSvc, logger: logger}
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /api/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reply, err := h.chat.Ask(r.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyQuery):
			observability.RecordChat("rejected")
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			observability.RecordChat("abandoned")
			writeError(w, http.StatusServiceUnavailable, err)
		default:
			h.logger.ErrorContext(r.Context(), "chat failed", "error", err)
			observability.RecordChat("error")
			writeError(w, http.StatusInternalServerError, errInternal)
		}
		return
	}

	observability.RecordChat("answered")
	if err := writeJSON(w, http.StatusOK, chatResponse{Reply: reply}); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// Business handles GET /api/business
func (h *Handler) Business(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	b, err := h.business.ForUser(r.Context(), user.ID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load business", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, business.ErrNotFound)
		return
	}

	if err := writeJSON(w, http.StatusOK, b); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}
