package model

import (
	"errors"
	"time"
)

// TransactionType is either a payment (reduces the client's debt) or a
// debt (increases it). There are no other variants.
type TransactionType string

const (
	TransactionTypePayment TransactionType = "payment"
	TransactionTypeDebt    TransactionType = "debt"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypePayment || t == TransactionTypeDebt
}

type Transaction struct {
	ID          int64           `json:"id"`
	ClientID    int64           `json:"client_id"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Date        time.Time       `json:"date"` // user-chosen calendar date, not created_at
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionCreateRequest is the input for recording a transaction.
type TransactionCreateRequest struct {
	ClientID    int64           `json:"client_id"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

func (p TransactionCreateRequest) Validate() error {
	if p.ClientID == 0 {
		return errors.New("client_id is required")
	}
	if !p.Type.Valid() {
		return errors.New("type must be payment or debt")
	}
	if p.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}
