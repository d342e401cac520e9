package interactor

import (
	"context"
	"fmt"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	apperrors "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/dtos"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RefundResult confirms an applied refund.
type RefundResult struct {
	TransactionID    string          `json:"transactionId"`
	SourceID         string          `json:"sourceId"`
	NewBalance       decimal.Decimal `json:"newBalance"`
	RefundAmount     decimal.Decimal `json:"refundAmount"`
	RemainingCeiling decimal.Decimal `json:"remainingCeiling"`
}

type RefundInteractor struct {
	invoiceRepo repositories.InvoiceRepository
	clientRepo  repositories.ClientRepository
	ledger      *LedgerInteractor
	logger      *zerolog.Logger
}

func NewRefundInteractor(invoiceRepo repositories.InvoiceRepository, clientRepo repositories.ClientRepository, ledger *LedgerInteractor) *RefundInteractor {
	l := log.GetLogger()
	return &RefundInteractor{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		ledger:      ledger,
		logger:      &l,
	}
}

// validateRefund rejects bad input before anything is written.
func validateRefund(dto *dtos.RefundDTO) (decimal.Decimal, error) {
	if dto.RefundMethod == "" {
		return decimal.Decimal{}, apperrors.NewValidationError("refund method is required")
	}
	if _, ok := models.ValidRefundMethods[models.RefundMethod(dto.RefundMethod)]; !ok {
		return decimal.Decimal{}, apperrors.NewValidationError("invalid refund method")
	}
	if dto.PaymentSourceID == "" {
		return decimal.Decimal{}, apperrors.NewValidationError("payment source is required")
	}

	amount, err := decimal.NewFromString(dto.RefundAmount)
	if err != nil {
		return decimal.Decimal{}, apperrors.NewValidationError("invalid refund amount")
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, apperrors.NewValidationError("refund amount must be positive")
	}

	return amount.Round(2), nil
}

// RefundInvoice refunds part of a paid invoice. The ceiling is the paid
// amount minus what was already refunded.
func (r *RefundInteractor) RefundInvoice(ctx context.Context, invoiceID string, dto *dtos.RefundDTO) (*RefundResult, error) {
	amount, err := validateRefund(dto)
	if err != nil {
		return nil, err
	}

	invoice, err := r.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	ceiling := invoice.RefundableAmount()
	if amount.GreaterThan(ceiling) {
		return nil, apperrors.NewCeilingExceededError()
	}

	ok, err := r.invoiceRepo.AddRefund(ctx, invoiceID, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		// a concurrent refund consumed the remainder between check and update
		return nil, apperrors.NewCeilingExceededError()
	}

	description := fmt.Sprintf("Refund for invoice %s (%s)", invoice.InvoiceNumber, dto.RefundMethod)
	if dto.Notes != "" {
		description = fmt.Sprintf("%s: %s", description, dto.Notes)
	}

	row, err := r.ledger.Apply(ctx, dto.PaymentSourceID, models.TransactionTypeRefund, amount, description, "invoice", invoiceID)
	if err != nil {
		r.logger.Error().Err(err).Str("invoice_id", invoiceID).Msg("invoice bookkeeping updated but ledger posting failed")
		return nil, err
	}

	return &RefundResult{
		TransactionID:    row.TransactionID,
		SourceID:         row.SourceID,
		NewBalance:       row.NewBalance,
		RefundAmount:     amount,
		RemainingCeiling: ceiling.Sub(amount),
	}, nil
}

// RefundClientCredit refunds against a client's available credit balance.
func (r *RefundInteractor) RefundClientCredit(ctx context.Context, clientID string, dto *dtos.RefundDTO) (*RefundResult, error) {
	amount, err := validateRefund(dto)
	if err != nil {
		return nil, err
	}

	client, err := r.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	ceiling := client.CreditBalance
	if amount.GreaterThan(ceiling) {
		return nil, apperrors.NewCeilingExceededError()
	}

	ok, err := r.clientRepo.DeductCredit(ctx, clientID, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewCeilingExceededError()
	}

	description := fmt.Sprintf("Credit refund for client %s (%s)", client.Name, dto.RefundMethod)
	if dto.Notes != "" {
		description = fmt.Sprintf("%s: %s", description, dto.Notes)
	}

	row, err := r.ledger.Apply(ctx, dto.PaymentSourceID, models.TransactionTypeRefund, amount, description, "client_credit", clientID)
	if err != nil {
		r.logger.Error().Err(err).Str("client_id", clientID).Msg("client credit deducted but ledger posting failed")
		return nil, err
	}

	return &RefundResult{
		TransactionID:    row.TransactionID,
		SourceID:         row.SourceID,
		NewBalance:       row.NewBalance,
		RefundAmount:     amount,
		RemainingCeiling: ceiling.Sub(amount),
	}, nil
}
