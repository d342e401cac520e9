package interactor

import (
	"context"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	apperrors "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/dtos"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	AdjustTypeIncome     = "income"
	AdjustTypeAdjustment = "adjustment"
)

type AdjustmentInteractor struct {
	ledger *LedgerInteractor
	logger *zerolog.Logger
}

func NewAdjustmentInteractor(ledger *LedgerInteractor) *AdjustmentInteractor {
	l := log.GetLogger()
	return &AdjustmentInteractor{ledger: ledger, logger: &l}
}

// AdjustBalance applies a manual correction. "income" always credits
// abs(amount). "adjustment" debits a positive amount and credits a negative
// one, so callers can make an adjustment add by passing a negative number.
// That escape hatch is relied on by existing clients and must stay.
func (a *AdjustmentInteractor) AdjustBalance(ctx context.Context, sourceID string, dto *dtos.AdjustBalanceDTO) (*repositories.TransactionRow, error) {
	if dto.Description == "" {
		return nil, apperrors.NewValidationError("description is required")
	}

	amount, err := decimal.NewFromString(dto.Amount)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to parse adjustment amount")
		return nil, apperrors.NewValidationError("invalid amount")
	}
	if amount.IsZero() {
		return nil, apperrors.NewValidationError("amount must be non-zero")
	}

	var adjusted decimal.Decimal
	var txType models.TransactionType
	switch dto.Type {
	case AdjustTypeIncome:
		adjusted = amount.Abs()
		txType = models.TransactionTypeIncome
	case AdjustTypeAdjustment:
		adjusted = amount.Neg()
		txType = models.TransactionTypeAdjustment
	default:
		return nil, apperrors.NewValidationError("type must be income or adjustment")
	}

	return a.ledger.Apply(ctx, sourceID, txType, adjusted, dto.Description, "", "")
}
