package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeBankAccount   AccountType = "bank_account"
	AccountTypeCash          AccountType = "cash"
	AccountTypeCreditCard    AccountType = "credit_card"
	AccountTypeDigitalWallet AccountType = "digital_wallet"
)

var ValidAccountTypes = map[AccountType]struct{}{
	AccountTypeBankAccount:   {},
	AccountTypeCash:          {},
	AccountTypeCreditCard:    {},
	AccountTypeDigitalWallet: {},
}

// PaymentSource holds a cached running balance. CurrentBalance must always
// equal InitialBalance plus the signed sum of the source's transactions;
// only the ledger repository writes it.
type PaymentSource struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Currency       string          `json:"currency"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}
