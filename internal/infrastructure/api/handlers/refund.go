package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	http2 "github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/http"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/dtos"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/interactor"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type RefundHandler struct {
	refund *interactor.RefundInteractor
	logger *zerolog.Logger
}

func NewRefundHandler(refund *interactor.RefundInteractor) *RefundHandler {
	logger := log.GetLogger()
	return &RefundHandler{refund: refund, logger: &logger}
}

func (h *RefundHandler) decodeRefund(r *http.Request) (*dtos.RefundDTO, error) {
	var dto dtos.RefundDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		return nil, errors.NewValidationError(errors.ErrInvalidRequestBody)
	}

	amount, err := dtos.DecodeAmount(dto.RawRefundAmount)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to decode refund amount")
		return nil, errors.NewValidationError("invalid refund amount")
	}
	dto.RefundAmount = amount

	return &dto, nil
}

func (h *RefundHandler) RefundInvoice(w http.ResponseWriter, r *http.Request) {
	dto, err := h.decodeRefund(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	invoiceID := chi.URLParam(r, http2.InvoiceIDParam)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.refund.RefundInvoice(ctx, invoiceID, dto)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedProcessRefund)
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

func (h *RefundHandler) RefundClientCredit(w http.ResponseWriter, r *http.Request) {
	dto, err := h.decodeRefund(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	clientID := chi.URLParam(r, http2.ClientIDParam)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.refund.RefundClientCredit(ctx, clientID, dto)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedProcessRefund)
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}
