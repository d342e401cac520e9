package repositories

import (
	"context"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/shopspring/decimal"
)

type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*models.Client, error)
	// DeductCredit subtracts amount from the client's credit balance. The
	// update predicate keeps the balance non-negative; false means the
	// client had less credit than amount and nothing changed.
	DeductCredit(ctx context.Context, id string, amount decimal.Decimal) (bool, error)
}

type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	// AddRefund increases refunded_amount and derives the refund status.
	// False means the refundable remainder was smaller than amount.
	AddRefund(ctx context.Context, id string, amount decimal.Decimal) (bool, error)
}
