package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/middlewares"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/rs/zerolog"
)

type CSRFHandler struct {
	store  *middlewares.CSRFStore
	logger *zerolog.Logger
}

func NewCSRFHandler(store *middlewares.CSRFStore) *CSRFHandler {
	logger := log.GetLogger()
	return &CSRFHandler{store: store, logger: &logger}
}

// Issue rotates and returns the CSRF token for the current session. Clients
// send it back in the x-csrf-token header on every mutating call.
func (h *CSRFHandler) Issue(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		errors.HandleHTTPError(w, errors.NewUnauthorizedError(errors.ErrSessionRequired))
		return
	}

	token, err := h.store.Refresh(session.Token)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue csrf token")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(struct {
		CSRFToken string `json:"csrfToken"`
	}{CSRFToken: token})
}
