package risk

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy holds the lending constants used to turn a risk base into terms.
// It is passed by value; callers never share a mutable copy.
type Policy struct {
	MaxLoan                    decimal.Decimal
	MinIR                      decimal.Decimal
	MaxIR                      decimal.Decimal
	CollateralPercentOfBalance decimal.Decimal
	CollateralBasePercent      decimal.Decimal
}

// DefaultPolicy returns the production lending policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxLoan:                    decimal.NewFromInt(100),
		MinIR:                      decimal.RequireFromString("0.08"),
		MaxIR:                      decimal.RequireFromString("0.24"),
		CollateralPercentOfBalance: decimal.RequireFromString("0.20"),
		CollateralBasePercent:      decimal.RequireFromString("1.35"),
	}
}

// Validate checks that the policy is internally consistent.
func (p Policy) Validate() error {
	if !p.MaxLoan.IsPositive() {
		return fmt.Errorf("max_loan must be positive")
	}
	if p.MinIR.GreaterThan(p.MaxIR) {
		return fmt.Errorf("min_ir (%s) must not exceed max_ir (%s)", p.MinIR, p.MaxIR)
	}
	if !p.CollateralPercentOfBalance.IsPositive() || p.CollateralPercentOfBalance.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("collateral_percent_of_balance must be in (0, 1]")
	}
	return nil
}
