package repositories

import (
	"context"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/shopspring/decimal"
)

const (
	SerializationError   = "40001"
	UniqueViolationError = "23505"
	ForeignKeyViolation  = "23503"
)

// LedgerRepository is the only writer of payment_sources.current_balance.
// Every balance-changing code path (expense payment, adjustment, refund)
// goes through ApplyTransaction.
type LedgerRepository interface {
	ApplyTransaction(ctx context.Context, entry *models.Transaction) (TransactionRow, error)
	GetBalance(ctx context.Context, sourceID string) (*decimal.Decimal, error)
	ListBySource(ctx context.Context, sourceID string, limit, offset int) ([]models.Transaction, int, error)
}

// TransactionRow is the result of an applied ledger transaction.
type TransactionRow struct {
	SourceID      string          `json:"sourceId"`
	TransactionID string          `json:"transactionId"`
	NewBalance    decimal.Decimal `json:"newBalance"`
}
