package http

// URL parameter names used across routes and handlers.
const (
	SourceIDParam       = "sourceID"
	ExpenseIDParam      = "expenseID"
	InvoiceIDParam      = "invoiceID"
	ClientIDParam       = "clientID"
	NotificationIDParam = "notificationID"
)
