package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	ExpenseStatusPending   ExpenseStatus = "pending"
	ExpenseStatusPaid      ExpenseStatus = "paid"
	ExpenseStatusOverdue   ExpenseStatus = "overdue"
	ExpenseStatusCancelled ExpenseStatus = "cancelled"
)

type Expense struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	SourceID    string          `json:"paymentSourceId"`
	Status      ExpenseStatus   `json:"status"`
	ExpenseDate time.Time       `json:"expenseDate"`
}

// Payable reports whether marking the expense paid is allowed.
func (e *Expense) Payable() bool {
	return e.Status == ExpenseStatusPending || e.Status == ExpenseStatusOverdue
}
