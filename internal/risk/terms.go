package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"LoanSentinel/internal/model"
)

// ErrInvalidRequest is returned for requests the calculator cannot price.
var ErrInvalidRequest = errors.New("invalid request")

var one = decimal.NewFromInt(1)

// ComputeLoanTerms converts a reconstructed lowest balance into loan terms.
//
// The collateral percent is the policy baseline minus the share of the
// requested loan covered by the usable part of the risk base. The interest
// rate is its complement, clamped to the policy band. The collateral percent
// itself is left unclamped.
func ComputeLoanTerms(riskBase, loanSize decimal.Decimal, policy Policy) (model.LoanTerms, error) {
	if !loanSize.IsPositive() {
		return model.LoanTerms{}, fmt.Errorf("%w: loan size must be positive, got %s", ErrInvalidRequest, loanSize)
	}

	collateralAvailable := riskBase.Mul(policy.CollateralPercentOfBalance)
	collateralPercent := policy.CollateralBasePercent.Sub(collateralAvailable.Div(loanSize))
	ir := clamp(one.Sub(collateralPercent), policy.MinIR, policy.MaxIR)

	return model.LoanTerms{
		RiskBase:            riskBase,
		CollateralAvailable: collateralAvailable,
		CollateralPercent:   collateralPercent,
		InterestRate:        ir,
		MaxLoan:             policy.MaxLoan,
	}, nil
}

// LoanSizeFromFloat converts a float loan size, rejecting NaN and infinities.
func LoanSizeFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: loan size must be finite", ErrInvalidRequest)
	}
	return decimal.NewFromFloat(f), nil
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
