package di

import (
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/cache"
	"github.com/cgdmohamed/NexusCore-sub001/internal/config"
	domainrepos "github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/handlers"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/middlewares"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/database/repositories"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/email"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/interactor"
	"github.com/jackc/pgx/v5/pgxpool"
)

const viewCacheTTL = 30 * time.Second

type Container struct {
	PaymentSourceHandler    *handlers.PaymentSourceHandler
	ExpenseHandler          *handlers.ExpenseHandler
	RefundHandler           *handlers.RefundHandler
	NotificationHandler     *handlers.NotificationHandler
	CSRFHandler             *handlers.CSRFHandler
	CSRFStore               *middlewares.CSRFStore
	PaymentSourceInteractor *interactor.PaymentSourceInteractor
	NotificationInteractor  *interactor.NotificationInteractor
	SessionRepository       domainrepos.SessionRepository
}

// NewContainer creates a new Container instance.
func NewContainer(db *pgxpool.Pool, cfg *config.Config) *Container {
	ledgerRepository := repositories.NewLedgerRepositoryImpl(db)
	sourceRepository := repositories.NewPaymentSourceRepositoryImpl(db)
	expenseRepository := repositories.NewExpenseRepositoryImpl(db)
	clientRepository := repositories.NewClientRepositoryImpl(db)
	invoiceRepository := repositories.NewInvoiceRepositoryImpl(db)
	notificationRepository := repositories.NewNotificationRepositoryImpl(db)
	userRepository := repositories.NewUserRepositoryImpl(db)
	sessionRepository := repositories.NewSessionRepositoryImpl(db)

	views := cache.NewViewCache(viewCacheTTL)
	sender := email.NewSMTPSender(cfg.SMTP)

	ledgerInteractor := interactor.NewLedgerInteractor(ledgerRepository, sourceRepository, views)
	adjustmentInteractor := interactor.NewAdjustmentInteractor(ledgerInteractor)
	refundInteractor := interactor.NewRefundInteractor(invoiceRepository, clientRepository, ledgerInteractor)
	expenseInteractor := interactor.NewExpenseInteractor(expenseRepository, ledgerInteractor)
	notificationInteractor := interactor.NewNotificationInteractor(notificationRepository, userRepository, sender)
	sourceInteractor := interactor.NewPaymentSourceInteractor(sourceRepository)

	csrfStore := middlewares.NewCSRFStore()

	return &Container{
		PaymentSourceHandler:    handlers.NewPaymentSourceHandler(adjustmentInteractor, ledgerInteractor),
		ExpenseHandler:          handlers.NewExpenseHandler(expenseInteractor),
		RefundHandler:           handlers.NewRefundHandler(refundInteractor),
		NotificationHandler:     handlers.NewNotificationHandler(notificationInteractor),
		CSRFHandler:             handlers.NewCSRFHandler(csrfStore),
		CSRFStore:               csrfStore,
		PaymentSourceInteractor: sourceInteractor,
		NotificationInteractor:  notificationInteractor,
		SessionRepository:       sessionRepository,
	}
}
