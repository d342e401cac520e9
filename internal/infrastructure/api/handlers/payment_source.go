package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	http2 "github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/http"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/dtos"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/interactor"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type PaymentSourceHandler struct {
	adjustment *interactor.AdjustmentInteractor
	ledger     *interactor.LedgerInteractor
	logger     *zerolog.Logger
}

func NewPaymentSourceHandler(adjustment *interactor.AdjustmentInteractor, ledger *interactor.LedgerInteractor) *PaymentSourceHandler {
	logger := log.GetLogger()
	return &PaymentSourceHandler{adjustment: adjustment, ledger: ledger, logger: &logger}
}

func (h *PaymentSourceHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var dto dtos.AdjustBalanceDTO
	err := json.NewDecoder(r.Body).Decode(&dto)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrInvalidRequestBody))
		return
	}

	dto.Amount, err = dtos.DecodeAmount(dto.RawAmount)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to decode raw amount")
		errors.HandleHTTPError(w, errors.NewValidationError("invalid amount"))
		return
	}

	sourceID := chi.URLParam(r, http2.SourceIDParam)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	row, err := h.adjustment.AdjustBalance(ctx, sourceID, &dto)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedAdjustBalance)
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(row)
}

func (h *PaymentSourceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	sourceID := chi.URLParam(r, http2.SourceIDParam)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	balance, err := h.ledger.GetBalance(ctx, sourceID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get balance")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(struct {
		Balance string `json:"balance"`
	}{Balance: balance.String()})
}

func (h *PaymentSourceHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	sourceID := chi.URLParam(r, http2.SourceIDParam)
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.ledger.GetTransactions(ctx, sourceID, page, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list transactions")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}
