package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"map2map-portal/internal/core/domain/auth"
)

func withUser(ctx context.Context, user auth.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func userFrom(ctx context.Context) (auth.User, bool) {
	user, ok := ctx.Value(userKey).(auth.User)
	return user, ok && user.ID != ""
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	_ = writeJSON(w, code, map[string]string{"error": err.Error()})
}
