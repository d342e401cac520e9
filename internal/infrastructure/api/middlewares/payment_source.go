package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	http2 "github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/http"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/interactor"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/go-chi/chi/v5"
)

// PaymentSourceValidationMiddleware validates the payment source id.
func PaymentSourceValidationMiddleware(sourceInt *interactor.PaymentSourceInteractor) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.GetLogger()
			sourceID := chi.URLParam(r, http2.SourceIDParam)
			if sourceID == "" {
				logger.Error().Msg(errors.ErrSourceIDRequired)
				errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrSourceIDRequired))
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()
			if exists, _ := sourceInt.ExistsByID(ctx, sourceID); !exists {
				logger.Error().Str("source_id", sourceID).Msg(errors.ErrInvalidSourceID)
				errors.HandleHTTPError(w, errors.NewNotFoundError("payment source"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
