package repositories

import (
	"context"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
)

type PaymentSourceRepository interface {
	GetByID(ctx context.Context, id string) (*models.PaymentSource, error)
}

type ExpenseRepository interface {
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	MarkPaid(ctx context.Context, id string) error
}
