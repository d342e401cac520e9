package routers

import (
	"fmt"

	"github.com/cgdmohamed/NexusCore-sub001/internal/di"
	http2 "github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/http"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/middlewares"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(container *di.Container) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)

	router.Route("/api", func(r chi.Router) {
		r.Use(middlewares.SessionMiddleware(container.SessionRepository))

		r.Get("/csrf-token", container.CSRFHandler.Issue)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.CSRFMiddleware(container.CSRFStore))

			r.Route(fmt.Sprintf("/payment-sources/{%s}", http2.SourceIDParam), func(r chi.Router) {
				r.Use(middlewares.PaymentSourceValidationMiddleware(container.PaymentSourceInteractor))
				ph := container.PaymentSourceHandler
				r.Post("/adjust-balance", ph.AdjustBalance)
				r.Get("/balance", ph.GetBalance)
				r.Get("/transactions", ph.ListTransactions)
			})

			r.Post(fmt.Sprintf("/expenses/{%s}/pay", http2.ExpenseIDParam), container.ExpenseHandler.Pay)
			r.Post(fmt.Sprintf("/invoices/{%s}/refund", http2.InvoiceIDParam), container.RefundHandler.RefundInvoice)
			r.Post(fmt.Sprintf("/clients/{%s}/credit/refund", http2.ClientIDParam), container.RefundHandler.RefundClientCredit)

			r.Route("/notifications", func(r chi.Router) {
				nh := container.NotificationHandler
				r.Get("/", nh.List)
				r.Put("/read-multiple", nh.MarkMultipleRead)
				r.Get("/settings", nh.GetSettings)
				r.Put("/settings", nh.UpdateSetting)
				r.Put(fmt.Sprintf("/{%s}/read", http2.NotificationIDParam), nh.MarkRead)

				r.Group(func(r chi.Router) {
					r.Use(middlewares.RequireAdmin)
					r.Post("/test", nh.SendTest)
					r.Post("/system", nh.Broadcast)
				})
			})
		})
	})

	return router
}
