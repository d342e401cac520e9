package repositories

import (
	"context"
	"errors"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	apperrors "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentSourceRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewPaymentSourceRepositoryImpl(db *pgxpool.Pool) repositories.PaymentSourceRepository {
	return &PaymentSourceRepositoryImpl{
		db: db,
	}
}

func (r *PaymentSourceRepositoryImpl) GetByID(ctx context.Context, id string) (*models.PaymentSource, error) {
	source := &models.PaymentSource{}
	err := r.db.QueryRow(
		ctx,
		`SELECT id, name, account_type, initial_balance, current_balance, currency, is_active, created_at
		 FROM payment_sources WHERE id = $1`,
		id,
	).Scan(&source.ID, &source.Name, &source.AccountType, &source.InitialBalance,
		&source.CurrentBalance, &source.Currency, &source.IsActive, &source.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment source")
		}
		return nil, err
	}

	return source, nil
}

type ExpenseRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewExpenseRepositoryImpl(db *pgxpool.Pool) repositories.ExpenseRepository {
	return &ExpenseRepositoryImpl{
		db: db,
	}
}

func (r *ExpenseRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := r.db.QueryRow(
		ctx,
		`SELECT id, title, amount, category, COALESCE(payment_source_id, ''), status, expense_date
		 FROM expenses WHERE id = $1`,
		id,
	).Scan(&expense.ID, &expense.Title, &expense.Amount, &expense.Category,
		&expense.SourceID, &expense.Status, &expense.ExpenseDate)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("expense")
		}
		return nil, err
	}

	return expense, nil
}

func (r *ExpenseRepositoryImpl) MarkPaid(ctx context.Context, id string) error {
	_, err := r.db.Exec(
		ctx,
		"UPDATE expenses SET status = $1 WHERE id = $2",
		models.ExpenseStatusPaid,
		id,
	)
	return err
}
