package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	"github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
)

const SessionCookieName = "session_token"

type contextKey string

const sessionKey contextKey = "session"

// SessionMiddleware resolves the session cookie to a user session. Every
// /api route runs behind it; unauthenticated requests never reach a handler.
func SessionMiddleware(sessions repositories.SessionRepository) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.GetLogger()

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				errors.HandleHTTPError(w, errors.NewUnauthorizedError(errors.ErrSessionRequired))
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()

			session, err := sessions.GetByToken(ctx, cookie.Value)
			if err != nil {
				logger.Error().Err(err).Msg(errors.ErrInvalidSession)
				errors.HandleHTTPError(w, errors.NewUnauthorizedError(errors.ErrInvalidSession))
				return
			}

			if session.Expired(time.Now()) {
				errors.HandleHTTPError(w, errors.NewUnauthorizedError(errors.ErrInvalidSession))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, session)))
		})
	}
}

// SessionFromContext returns the session placed by SessionMiddleware.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	return session, ok
}

// RequireAdmin guards admin-only routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok || session.Role != models.RoleAdmin {
			errors.HandleHTTPError(w, errors.NewForbiddenError(errors.ErrAdminRequired))
			return
		}
		next.ServeHTTP(w, r)
	})
}
