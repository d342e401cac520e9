package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	apperr "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func (f *fakeSessionRepo) GetByToken(_ context.Context, token string) (*models.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, apperr.NewNotFoundError("session")
	}
	return session, nil
}

func TestCSRFStore(t *testing.T) {
	store := NewCSRFStore()

	t.Run("refresh issues a validating token", func(t *testing.T) {
		token, err := store.Refresh("session-1")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, store.Validate("session-1", token))
	})

	t.Run("refresh rotates the previous token", func(t *testing.T) {
		first, err := store.Refresh("session-2")
		require.NoError(t, err)
		second, err := store.Refresh("session-2")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.False(t, store.Validate("session-2", first))
		assert.True(t, store.Validate("session-2", second))
	})

	t.Run("tokens are scoped per session", func(t *testing.T) {
		token, err := store.Refresh("session-3")
		require.NoError(t, err)

		assert.False(t, store.Validate("session-4", token))
	})

	t.Run("clear drops the token", func(t *testing.T) {
		token, err := store.Refresh("session-5")
		require.NoError(t, err)

		store.Clear("session-5")

		assert.False(t, store.Validate("session-5", token))
	})

	t.Run("empty token never validates", func(t *testing.T) {
		_, err := store.Refresh("session-6")
		require.NoError(t, err)

		assert.False(t, store.Validate("session-6", ""))
	})
}

func TestCSRFMiddleware(t *testing.T) {
	sessionToken := "tok-1"
	sessions := &fakeSessionRepo{sessions: map[string]*models.Session{
		sessionToken: {
			Token:     sessionToken,
			UserID:    "u1",
			Role:      models.RoleFinance,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}}

	store := NewCSRFStore()
	csrfToken, err := store.Refresh(sessionToken)
	require.NoError(t, err)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := SessionMiddleware(sessions)(CSRFMiddleware(store)(ok))

	do := func(method, csrfHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/payment-sources/s1/adjust-balance", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionToken})
		if csrfHeader != "" {
			req.Header.Set(CSRFHeader, csrfHeader)
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		return recorder
	}

	t.Run("GET passes without a token", func(t *testing.T) {
		recorder := do(http.MethodGet, "")
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("POST without a token is forbidden", func(t *testing.T) {
		recorder := do(http.MethodPost, "")
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("POST with a wrong token is forbidden", func(t *testing.T) {
		recorder := do(http.MethodPost, "not-the-token")
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("POST with the issued token passes", func(t *testing.T) {
		recorder := do(http.MethodPost, csrfToken)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("missing session cookie is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/payment-sources/s1/adjust-balance", nil)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("expired session is unauthorized", func(t *testing.T) {
		sessions.sessions["expired"] = &models.Session{
			Token:     "expired",
			UserID:    "u2",
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		req := httptest.NewRequest(http.MethodGet, "/api/payment-sources/s1/balance", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired"})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(ok)

	do := func(session *models.Session) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/notifications/system", nil)
		if session != nil {
			req = req.WithContext(context.WithValue(req.Context(), sessionKey, session))
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		return recorder
	}

	t.Run("admin passes", func(t *testing.T) {
		recorder := do(&models.Session{Token: "t", UserID: "u1", Role: models.RoleAdmin})
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		recorder := do(&models.Session{Token: "t", UserID: "u1", Role: models.RoleFinance})
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("no session is forbidden", func(t *testing.T) {
		recorder := do(nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
