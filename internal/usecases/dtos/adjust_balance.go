package dtos

import (
	"encoding/json"
	"fmt"
)

// AdjustBalanceDTO carries a manual balance correction. Amount arrives as a
// raw JSON value so decimal strings never pass through float64.
type AdjustBalanceDTO struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      string          `json:"-"`
	RawAmount   json.RawMessage `json:"amount"`
}

// DecodeAmount extracts the decimal string out of a raw JSON amount field.
func DecodeAmount(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("amount is required")
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", err
	}

	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("amount must be a decimal string")
	}

	return s, nil
}
