package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeAdjustment TransactionType = "adjustment"
	TransactionTypeRefund     TransactionType = "refund"
	TransactionTypeIncome     TransactionType = "income"
)

var ValidTransactionTypes = map[TransactionType]struct{}{
	TransactionTypeExpense:    {},
	TransactionTypeAdjustment: {},
	TransactionTypeRefund:     {},
	TransactionTypeIncome:     {},
}

// Transaction is an immutable ledger row. Amount is signed: negative for
// debits, positive for credits. Corrections are posted as new offsetting
// rows, never as updates.
type Transaction struct {
	ID            string          `db:"id"`
	SourceID      string          `db:"payment_source_id"`
	Type          TransactionType `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   string          `db:"reference_id"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	CreatedAt     time.Time       `db:"created_at"`
}
