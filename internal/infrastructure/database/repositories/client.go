package repositories

import (
	"context"
	"errors"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	apperrors "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ClientRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewClientRepositoryImpl(db *pgxpool.Pool) repositories.ClientRepository {
	return &ClientRepositoryImpl{
		db: db,
	}
}

func (r *ClientRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Client, error) {
	client := &models.Client{}
	err := r.db.QueryRow(
		ctx,
		"SELECT id, name, credit_balance FROM clients WHERE id = $1",
		id,
	).Scan(&client.ID, &client.Name, &client.CreditBalance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("client")
		}
		return nil, err
	}

	return client, nil
}

// DeductCredit keeps credit_balance non-negative via the update predicate:
// a deduction larger than the remaining credit matches zero rows.
func (r *ClientRepositoryImpl) DeductCredit(ctx context.Context, id string, amount decimal.Decimal) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE clients
		 SET credit_balance = credit_balance - $2::NUMERIC(14,2)
		 WHERE id = $1 AND credit_balance >= $2::NUMERIC(14,2)`,
		id, amount,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type InvoiceRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewInvoiceRepositoryImpl(db *pgxpool.Pool) repositories.InvoiceRepository {
	return &InvoiceRepositoryImpl{
		db: db,
	}
}

func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	err := r.db.QueryRow(
		ctx,
		`SELECT id, client_id, invoice_number, total, paid_amount, refunded_amount, status
		 FROM invoices WHERE id = $1`,
		id,
	).Scan(&invoice.ID, &invoice.ClientID, &invoice.InvoiceNumber, &invoice.Total,
		&invoice.PaidAmount, &invoice.RefundedAmount, &invoice.Status)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invoice")
		}
		return nil, err
	}

	return invoice, nil
}

// AddRefund bumps refunded_amount and derives the refund status. The
// predicate re-checks the refundable remainder so two concurrent refunds
// cannot overshoot it together.
func (r *InvoiceRepositoryImpl) AddRefund(ctx context.Context, id string, amount decimal.Decimal) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE invoices
		 SET refunded_amount = refunded_amount + $2::NUMERIC(14,2),
		     status = CASE
		       WHEN refunded_amount + $2::NUMERIC(14,2) >= paid_amount THEN 'refunded'
		       ELSE 'partially_refunded'
		     END
		 WHERE id = $1 AND paid_amount - refunded_amount >= $2::NUMERIC(14,2)`,
		id, amount,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
