package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	http2 "github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/http"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/interactor"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ExpenseHandler struct {
	expense *interactor.ExpenseInteractor
	logger  *zerolog.Logger
}

func NewExpenseHandler(expense *interactor.ExpenseInteractor) *ExpenseHandler {
	logger := log.GetLogger()
	return &ExpenseHandler{expense: expense, logger: &logger}
}

// Pay marks an expense paid against a payment source. The body may override
// the source attached to the expense.
func (h *ExpenseHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentSourceID string `json:"paymentSourceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrInvalidRequestBody))
		return
	}

	expenseID := chi.URLParam(r, http2.ExpenseIDParam)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	row, err := h.expense.PayExpense(ctx, expenseID, body.PaymentSourceID)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedPayExpense)
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(row)
}
