package recorder

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LoanSentinel/internal/model"
	"LoanSentinel/internal/store"
)

func TestSQLRecorder(t *testing.T) {
	db, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "rec.db"))
	require.NoError(t, err)
	defer db.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	rec, err := NewSQLRecorder(db, logger)
	require.NoError(t, err)
	defer rec.Close()

	err = rec.RecordAssessment(&AssessmentEvent{
		Wallet:           "w1",
		AccountID:        "a1",
		LoanSize:         decimal.NewFromInt(500),
		Balance:          decimal.NewFromInt(1000),
		TransactionCount: 3,
		Terms: model.LoanTerms{
			RiskBase:            decimal.NewFromInt(1000),
			CollateralAvailable: decimal.NewFromInt(200),
			CollateralPercent:   decimal.RequireFromString("0.95"),
			InterestRate:        decimal.RequireFromString("0.08"),
			MaxLoan:             decimal.NewFromInt(100),
		},
	})
	require.NoError(t, err)
	require.NoError(t, rec.RecordSync(&SyncEvent{Wallet: "w1", AccountID: "a1", TransactionCount: 3}))
	require.NoError(t, rec.RecordSync(&SyncEvent{Wallet: "w1", AccountID: "a2", Error: "boom"}))

	var cp, ir string
	require.NoError(t, db.QueryRow(`SELECT collateral_percent, interest_rate FROM assessments WHERE wallet = 'w1'`).Scan(&cp, &ir))
	assert.Equal(t, "0.95", cp)
	assert.Equal(t, "0.08", ir)

	var runs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sync_runs`).Scan(&runs))
	assert.Equal(t, 2, runs)

	// migrations are idempotent
	_, err = NewSQLRecorder(db, logger)
	assert.NoError(t, err)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordAssessment(&AssessmentEvent{}))
	assert.NoError(t, r.RecordSync(&SyncEvent{}))
	assert.NoError(t, r.Close())
}
