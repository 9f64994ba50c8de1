package server

import (
	"context"
	"net/http"

	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
	"github.com/Svector-anu/Aboki-Business/sessions"
)

type contextKey string

// ContextKeyToken holds the bearer token of the validated session.
const ContextKeyToken contextKey = "session_token"

// RequireSession rejects requests that have no valid session in the given
// manager. The bearer token is read immediately before each remote call, so
// the handler receives it via context rather than re-reading storage.
func (s *Server) RequireSession(manager *sessions.Manager) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := manager.Token()
			if err != nil {
				switch {
				case apperrors.Is(err, apperrors.ErrNoSession):
					respondError(w, http.StatusUnauthorized, "not signed in")
				case apperrors.Is(err, apperrors.ErrSessionExpired):
					respondError(w, http.StatusUnauthorized, "session expired")
				default:
					respondError(w, http.StatusInternalServerError, "session lookup failed")
				}
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeyToken, token)
			next(w, r.WithContext(ctx))
		}
	}
}

// tokenFromContext returns the session token stashed by RequireSession.
func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ContextKeyToken).(string)
	return token
}
