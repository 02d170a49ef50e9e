package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LoanTerms is the full-precision output of the loan terms calculator.
type LoanTerms struct {
	RiskBase            decimal.Decimal
	CollateralAvailable decimal.Decimal
	CollateralPercent   decimal.Decimal // not clamped, may leave [0,1]
	InterestRate        decimal.Decimal
	MaxLoan             decimal.Decimal
}

// LoanTermsResponse is the shape returned to callers of getLoanTerms.
type LoanTermsResponse struct {
	CollateralPercent string      `json:"collateralPercent"`
	IR                string      `json:"ir"`
	MaxLoan           json.Number `json:"maxLoan"`
}

// Response rounds the terms to display precision.
func (t LoanTerms) Response() LoanTermsResponse {
	return LoanTermsResponse{
		CollateralPercent: t.CollateralPercent.StringFixed(2),
		IR:                t.InterestRate.StringFixed(2),
		MaxLoan:           json.Number(t.MaxLoan.String()),
	}
}
