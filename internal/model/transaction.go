package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger entry as reported by the data provider.
// Positive amounts left the account, negative amounts entered it.
type Transaction struct {
	ID        string          `json:"transaction_id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Name      string          `json:"name,omitempty"`
	Pending   bool            `json:"pending"`
}

// BalanceSnapshot is the available balance of an account at fetch time.
type BalanceSnapshot struct {
	AccountID string
	Available decimal.Decimal
	FetchedAt time.Time
}
