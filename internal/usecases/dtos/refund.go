package dtos

import "encoding/json"

// RefundDTO is shared by invoice refunds and client-credit refunds.
type RefundDTO struct {
	RefundAmount    string          `json:"-"`
	RawRefundAmount json.RawMessage `json:"refundAmount"`
	RefundMethod    string          `json:"refundMethod"`
	RefundReference string          `json:"refundReference,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	PaymentSourceID string          `json:"paymentSourceId"`
}
