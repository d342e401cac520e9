package interactor

import (
	"context"
	"fmt"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	apperrors "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/rs/zerolog"
)

type ExpenseInteractor struct {
	expenseRepo repositories.ExpenseRepository
	ledger      *LedgerInteractor
	logger      *zerolog.Logger
}

func NewExpenseInteractor(expenseRepo repositories.ExpenseRepository, ledger *LedgerInteractor) *ExpenseInteractor {
	l := log.GetLogger()
	return &ExpenseInteractor{
		expenseRepo: expenseRepo,
		ledger:      ledger,
		logger:      &l,
	}
}

// PayExpense marks a pending or overdue expense as paid against a payment
// source, producing exactly one debit transaction. The debit may drive the
// source balance negative.
func (e *ExpenseInteractor) PayExpense(ctx context.Context, expenseID, sourceID string) (*repositories.TransactionRow, error) {
	expense, err := e.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if !expense.Payable() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("expense is %s and cannot be paid", expense.Status))
	}

	if sourceID == "" {
		sourceID = expense.SourceID
	}
	if sourceID == "" {
		return nil, apperrors.NewValidationError("payment source is required")
	}

	description := fmt.Sprintf("Expense payment: %s", expense.Title)
	row, err := e.ledger.Apply(ctx, sourceID, models.TransactionTypeExpense, expense.Amount.Neg(), description, "expense", expenseID)
	if err != nil {
		return nil, err
	}

	if err = e.expenseRepo.MarkPaid(ctx, expenseID); err != nil {
		e.logger.Error().Err(err).Str("expense_id", expenseID).Msg("debit applied but expense status update failed")
		return nil, err
	}

	return row, nil
}
