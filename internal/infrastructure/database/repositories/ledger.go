package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	apperrors "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type LedgerRepositoryImpl struct {
	db     *pgxpool.Pool
	logger *zerolog.Logger
}

// NewLedgerRepositoryImpl creates new instance of LedgerRepositoryImpl.
func NewLedgerRepositoryImpl(db *pgxpool.Pool) repositories.LedgerRepository {
	l := log.GetLogger()
	return &LedgerRepositoryImpl{
		db:     db,
		logger: &l,
	}
}

// Inserts the ledger row and moves current_balance in one statement. The
// source row is locked first so balance_after snapshots stay consistent
// under concurrent writers. There is no >= 0 guard: expense debits may
// drive a source negative (overdraft is tracked, not rejected).
const applyTransaction = `
WITH source AS (
  SELECT id, current_balance
  FROM payment_sources
  WHERE id = $2
  FOR UPDATE
),
new_transaction AS (
  INSERT INTO payment_source_transactions
    (id, payment_source_id, type, amount, description, reference_type, reference_id, balance_after)
  SELECT $1, source.id, $3, $4::NUMERIC(14,2), $5, NULLIF($6, ''), NULLIF($7, ''),
         source.current_balance + $4::NUMERIC(14,2)
  FROM source
  RETURNING id, payment_source_id, balance_after
),
updated_source AS (
  UPDATE payment_sources
  SET current_balance = new_transaction.balance_after
  FROM new_transaction
  WHERE payment_sources.id = new_transaction.payment_source_id
  RETURNING payment_sources.id, payment_sources.current_balance
)
SELECT updated_source.id, new_transaction.id, updated_source.current_balance
FROM updated_source, new_transaction;`

// ApplyTransaction appends an immutable transaction row and updates the
// source's cached balance in a single atomic unit.
func (r *LedgerRepositoryImpl) ApplyTransaction(ctx context.Context, entry *models.Transaction) (repositories.TransactionRow, error) {
	args := []interface{}{
		entry.ID,
		entry.SourceID,
		entry.Type,
		entry.Amount,
		entry.Description,
		entry.ReferenceType,
		entry.ReferenceID,
	}

	var data repositories.TransactionRow
	var err error
	for {
		data, err = r.applyWithTx(ctx, args...)

		if err == nil {
			return data, nil
		}

		if isSerializationError(err) {
			// retry transaction if serialization error occurs (SQLSTATE 40001)
			continue
		} else {
			if errors.Is(err, pgx.ErrNoRows) {
				return data, apperrors.NewNotFoundError("payment source")
			}
			return data, fmt.Errorf("ledger transaction error: %w", err)
		}
	}
}

func (r *LedgerRepositoryImpl) applyWithTx(ctx context.Context, args ...interface{}) (repositories.TransactionRow, error) {
	var tr repositories.TransactionRow
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return tr, err
	}

	err = tx.QueryRow(ctx, applyTransaction, args...).Scan(&tr.SourceID, &tr.TransactionID, &tr.NewBalance)
	if err != nil {
		r.logger.Error().Err(err).Str("source_id", fmt.Sprint(args[1])).Msg("ledger apply failed")
		tx.Rollback(ctx)
		return tr, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		tx.Rollback(ctx)
		return tr, err
	}

	return tr, nil
}

// GetBalance returns the cached running balance of a payment source.
func (r *LedgerRepositoryImpl) GetBalance(ctx context.Context, sourceID string) (*decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRow(ctx, "SELECT current_balance FROM payment_sources WHERE id = $1", sourceID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment source")
		}
		return nil, fmt.Errorf("get source balance: %w", err)
	}

	return &balance, nil
}

// ListBySource returns one page of transaction history, newest first, plus
// the total row count for the source.
func (r *LedgerRepositoryImpl) ListBySource(ctx context.Context, sourceID string, limit, offset int) ([]models.Transaction, int, error) {
	var total int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM payment_source_transactions WHERE payment_source_id = $1", sourceID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, payment_source_id, type, amount, description,
		        COALESCE(reference_type, ''), COALESCE(reference_id, ''),
		        balance_after, created_at
		 FROM payment_source_transactions
		 WHERE payment_source_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		sourceID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0, limit)
	for rows.Next() {
		var t models.Transaction
		err = rows.Scan(&t.ID, &t.SourceID, &t.Type, &t.Amount, &t.Description,
			&t.ReferenceType, &t.ReferenceID, &t.BalanceAfter, &t.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == repositories.SerializationError
}
