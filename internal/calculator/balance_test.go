package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"LoanSentinel/internal/model"
)

func txns(amounts ...string) []model.Transaction {
	out := make([]model.Transaction, len(amounts))
	for i, a := range amounts {
		out[i] = model.Transaction{Amount: decimal.RequireFromString(a)}
	}
	return out
}

func TestReconstructLowestBalance(t *testing.T) {
	tests := []struct {
		name    string
		current string
		amounts []string
		want    string
	}{
		{"empty window returns current", "250.75", nil, "250.75"},
		{"mixed history", "1000", []string{"50", "-30", "200"}, "1000"},
		{"deposits only", "500", []string{"-100", "-50.5", "-1"}, "348.5"},
		{"spending only keeps current", "500", []string{"20", "30"}, "500"},
		{"dip in the middle", "100", []string{"-80", "50"}, "20"},
		{"goes negative", "10", []string{"-60", "5", "-25"}, "-70"},
		{"duplicates count twice", "100", []string{"-40", "-40"}, "20"},
		{"negative current", "-15", []string{"10", "-30"}, "-35"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconstructLowestBalance(decimal.RequireFromString(tt.current), txns(tt.amounts...))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestReconstructLowestBalance_NeverAboveCurrent(t *testing.T) {
	histories := [][]string{
		{"1", "2", "3"},
		{"-1", "-2", "-3"},
		{"500", "-1000", "499.99"},
		{"0", "0"},
		{"-0.01"},
	}
	for _, cur := range []string{"0", "10", "-10", "12345.67"} {
		current := decimal.RequireFromString(cur)
		for _, h := range histories {
			got := ReconstructLowestBalance(current, txns(h...))
			if got.GreaterThan(current) {
				t.Errorf("current %s history %v: got %s above current", cur, h, got)
			}
		}
	}
}

// The walk must run most-recent-first. Feeding the same history oldest-first
// yields a different (wrong) low-water mark.
func TestReconstructLowestBalance_OrderSensitive(t *testing.T) {
	current := decimal.NewFromInt(100)

	mostRecentFirst := ReconstructLowestBalance(current, txns("-80", "50"))
	oldestFirst := ReconstructLowestBalance(current, txns("50", "-80"))

	assert.Equal(t, "20", mostRecentFirst.String())
	assert.Equal(t, "70", oldestFirst.String())
}

func TestLowWaterMark_Index(t *testing.T) {
	low, idx := LowWaterMark(decimal.NewFromInt(100), txns("-10", "-20", "40", "-5"))
	assert.Equal(t, "70", low.String())
	assert.Equal(t, 1, idx)

	low, idx = LowWaterMark(decimal.NewFromInt(100), txns("10", "20"))
	assert.Equal(t, "100", low.String())
	assert.Equal(t, -1, idx)

	// ties keep the earliest index
	_, idx = LowWaterMark(decimal.NewFromInt(100), txns("-10", "5", "-5"))
	assert.Equal(t, 0, idx)
}
