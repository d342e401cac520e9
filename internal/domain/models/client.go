package models

import "github.com/shopspring/decimal"

type RefundMethod string

const (
	RefundMethodCash         RefundMethod = "cash"
	RefundMethodBankTransfer RefundMethod = "bank_transfer"
	RefundMethodCreditCard   RefundMethod = "credit_card"
	RefundMethodCheck        RefundMethod = "check"
)

var ValidRefundMethods = map[RefundMethod]struct{}{
	RefundMethodCash:         {},
	RefundMethodBankTransfer: {},
	RefundMethodCreditCard:   {},
	RefundMethodCheck:        {},
}

// Client carries an available credit balance. CreditBalance never goes
// negative; the deduction query enforces the floor.
type Client struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

type InvoiceStatus string

const (
	InvoiceStatusPaid              InvoiceStatus = "paid"
	InvoiceStatusRefunded          InvoiceStatus = "refunded"
	InvoiceStatusPartiallyRefunded InvoiceStatus = "partially_refunded"
)

type Invoice struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"clientId"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	Total          decimal.Decimal `json:"total"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	RefundedAmount decimal.Decimal `json:"refundedAmount"`
	Status         InvoiceStatus   `json:"status"`
}

// RefundableAmount is the ceiling for invoice refunds.
func (i *Invoice) RefundableAmount() decimal.Decimal {
	return i.PaidAmount.Sub(i.RefundedAmount)
}
