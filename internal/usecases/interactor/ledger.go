package interactor

import (
	"context"

	"github.com/cgdmohamed/NexusCore-sub001/internal/cache"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	apperrors "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// LedgerInteractor is the single entry point for balance changes. Expense
// payment, adjustments and refunds all post through Apply, which keeps the
// invariant currentBalance == initialBalance + sum(transactions.amount).
type LedgerInteractor struct {
	ledgerRepo repositories.LedgerRepository
	sourceRepo repositories.PaymentSourceRepository
	views      *cache.ViewCache
	logger     *zerolog.Logger
}

func NewLedgerInteractor(ledgerRepo repositories.LedgerRepository, sourceRepo repositories.PaymentSourceRepository, views *cache.ViewCache) *LedgerInteractor {
	l := log.GetLogger()
	return &LedgerInteractor{
		ledgerRepo: ledgerRepo,
		sourceRepo: sourceRepo,
		views:      views,
		logger:     &l,
	}
}

// Apply posts one signed transaction against a payment source. Amount is
// negative for debits and positive for credits; zero is rejected. Debits may
// drive the balance negative.
func (i *LedgerInteractor) Apply(ctx context.Context, sourceID string, txType models.TransactionType, amount decimal.Decimal, description string, refType, refID string) (*repositories.TransactionRow, error) {
	if _, ok := models.ValidTransactionTypes[txType]; !ok {
		return nil, apperrors.NewValidationError("invalid transaction type")
	}

	if amount.IsZero() {
		return nil, apperrors.NewValidationError("amount must be non-zero")
	}

	if _, err := i.sourceRepo.GetByID(ctx, sourceID); err != nil {
		return nil, err
	}

	entry := &models.Transaction{
		ID:            uuid.New().String(),
		SourceID:      sourceID,
		Type:          txType,
		Amount:        amount.Round(2),
		Description:   description,
		ReferenceType: refType,
		ReferenceID:   refID,
	}

	row, err := i.ledgerRepo.ApplyTransaction(ctx, entry)
	if err != nil {
		return nil, err
	}

	i.views.InvalidateSource(sourceID)

	i.logger.Info().
		Str("source_id", sourceID).
		Str("transaction_id", row.TransactionID).
		Str("type", string(txType)).
		Str("amount", amount.String()).
		Msg("ledger transaction applied")

	return &row, nil
}

// GetBalance returns the source's running balance, served from the view
// cache when a fresh copy exists.
func (i *LedgerInteractor) GetBalance(ctx context.Context, sourceID string) (decimal.Decimal, error) {
	key := cache.Key(cache.BalanceView, sourceID)
	if cached, ok := i.views.Get(key); ok {
		return cached.(decimal.Decimal), nil
	}

	balance, err := i.ledgerRepo.GetBalance(ctx, sourceID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	i.views.Set(key, *balance)
	return *balance, nil
}

// TransactionPage is one page of a source's transaction history.
type TransactionPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
	Page         int                  `json:"page"`
	Limit        int                  `json:"limit"`
}

// GetTransactions returns one page of the source's history, served from the
// view cache when a fresh copy exists.
func (i *LedgerInteractor) GetTransactions(ctx context.Context, sourceID string, page, limit int) (*TransactionPage, error) {
	page, limit = clampPage(page, limit)

	key := cache.PageKey(cache.TransactionsView, page, limit, sourceID)
	if cached, ok := i.views.Get(key); ok {
		return cached.(*TransactionPage), nil
	}

	transactions, total, err := i.ledgerRepo.ListBySource(ctx, sourceID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	result := &TransactionPage{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		Limit:        limit,
	}
	i.views.Set(key, result)
	return result, nil
}

// clampPage normalizes pagination input. Limit is clamped server-side to
// bound response size.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
