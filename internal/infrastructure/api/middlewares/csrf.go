package middlewares

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"

	"github.com/cgdmohamed/NexusCore-sub001/internal/errors"
)

const CSRFHeader = "x-csrf-token"

// CSRFStore holds one CSRF token per session. It is an explicit object with
// a refresh/clear lifecycle instead of module-level state, so login and
// logout can rotate tokens deliberately.
type CSRFStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewCSRFStore() *CSRFStore {
	return &CSRFStore{tokens: make(map[string]string)}
}

// Refresh issues a new token for the session, replacing any previous one.
func (s *CSRFStore) Refresh(sessionToken string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(b)

	s.mu.Lock()
	s.tokens[sessionToken] = token
	s.mu.Unlock()

	return token, nil
}

func (s *CSRFStore) Validate(sessionToken, token string) bool {
	s.mu.RLock()
	current, ok := s.tokens[sessionToken]
	s.mu.RUnlock()
	return ok && token != "" && current == token
}

// Clear drops the session's token, typically on logout.
func (s *CSRFStore) Clear(sessionToken string) {
	s.mu.Lock()
	delete(s.tokens, sessionToken)
	s.mu.Unlock()
}

// CSRFMiddleware requires a valid x-csrf-token header on mutating verbs.
func CSRFMiddleware(store *CSRFStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			session, ok := SessionFromContext(r.Context())
			if !ok {
				errors.HandleHTTPError(w, errors.NewUnauthorizedError(errors.ErrSessionRequired))
				return
			}

			token := r.Header.Get(CSRFHeader)
			if token == "" {
				errors.HandleHTTPError(w, errors.NewForbiddenError(errors.ErrCSRFTokenRequired))
				return
			}

			if !store.Validate(session.Token, token) {
				errors.HandleHTTPError(w, errors.NewForbiddenError(errors.ErrInvalidCSRFToken))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
