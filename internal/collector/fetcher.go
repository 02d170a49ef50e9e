package collector

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"LoanSentinel/internal/model"
)

// Fetcher defines the interface for talking to a financial data provider.
type Fetcher interface {
	FetchBalance(ctx context.Context, accessToken, accountID string) (decimal.Decimal, error)
	FetchTransactions(ctx context.Context, accessToken, accountID string, start, end time.Time) ([]model.Transaction, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (string, error)
	FetchIncome(ctx context.Context, accessToken string) (json.RawMessage, error)
	Name() string
}
