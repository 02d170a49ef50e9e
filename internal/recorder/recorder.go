package recorder

import (
	"github.com/shopspring/decimal"

	"LoanSentinel/internal/model"
)

// AssessmentEvent holds the inputs and outputs of one loan terms request.
type AssessmentEvent struct {
	Wallet           string
	AccountID        string
	LoanSize         decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
	Terms            model.LoanTerms
}

// SyncEvent records one scheduled refresh of an account's transactions.
type SyncEvent struct {
	Wallet           string
	AccountID        string
	TransactionCount int
	Error            string // empty on success
}

// Recorder persists assessment history for analysis.
type Recorder interface {
	RecordAssessment(evt *AssessmentEvent) error
	RecordSync(evt *SyncEvent) error
	Close() error
}
