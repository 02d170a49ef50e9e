package collector

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"LoanSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Balance      decimal.Decimal
	Transactions []model.Transaction
	Income       json.RawMessage
	Err          error

	mu               sync.Mutex
	transactionCalls int
	lastStart        time.Time
	lastEnd          time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBalance(_ context.Context, _, _ string) (decimal.Decimal, error) {
	if m.Err != nil {
		return decimal.Zero, m.Err
	}
	return m.Balance, nil
}

func (m *MockFetcher) FetchTransactions(_ context.Context, _, _ string, start, end time.Time) ([]model.Transaction, error) {
	m.mu.Lock()
	m.transactionCalls++
	m.lastStart, m.lastEnd = start, end
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]model.Transaction, len(m.Transactions))
	copy(out, m.Transactions)
	return out, nil
}

func (m *MockFetcher) ExchangePublicToken(_ context.Context, publicToken string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return "access-mock-" + publicToken, nil
}

func (m *MockFetcher) FetchIncome(_ context.Context, _ string) (json.RawMessage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Income == nil {
		return json.RawMessage(`{}`), nil
	}
	return m.Income, nil
}

// TransactionCalls reports how many times FetchTransactions was invoked.
func (m *MockFetcher) TransactionCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transactionCalls
}

// LastWindow returns the date range of the most recent transaction fetch.
func (m *MockFetcher) LastWindow() (time.Time, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastStart, m.lastEnd
}
