package recorder

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"LoanSentinel/internal/store"
)

// SQLRecorder persists assessment history next to the user store.
type SQLRecorder struct {
	db     *store.DB
	logger *logrus.Logger
	mu     sync.Mutex
	now    func() time.Time
}

// NewSQLRecorder runs migrations on db and returns a recorder. The caller
// owns db; Close does not close it.
func NewSQLRecorder(db *store.DB, logger *logrus.Logger) (*SQLRecorder, error) {
	r := &SQLRecorder{db: db, logger: logger, now: time.Now}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Infof("assessment recorder ready (%s)", db.Driver)
	return r, nil
}

func (r *SQLRecorder) migrate() error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS assessments (
			id                   %s,
			timestamp            BIGINT NOT NULL,
			wallet               TEXT NOT NULL,
			account_id           TEXT NOT NULL,
			loan_size            TEXT,
			balance              TEXT,
			transaction_count    INTEGER,
			risk_base            TEXT,
			collateral_available TEXT,
			collateral_percent   TEXT,
			interest_rate        TEXT,
			max_loan             TEXT
		)`, r.db.AutoIncrementPK()),
		`CREATE INDEX IF NOT EXISTS idx_assessments_ts ON assessments(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_wallet ON assessments(wallet)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS sync_runs (
			id                %s,
			timestamp         BIGINT NOT NULL,
			wallet            TEXT NOT NULL,
			account_id        TEXT NOT NULL,
			transaction_count INTEGER,
			error             TEXT
		)`, r.db.AutoIncrementPK()),
		`CREATE INDEX IF NOT EXISTS idx_sync_ts ON sync_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLRecorder) RecordAssessment(evt *AssessmentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := evt.Terms
	_, err := r.db.Exec(r.db.Rebind(`INSERT INTO assessments
		(timestamp, wallet, account_id, loan_size, balance, transaction_count,
		 risk_base, collateral_available, collateral_percent, interest_rate, max_loan)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`),
		r.now().Unix(), evt.Wallet, evt.AccountID, evt.LoanSize.String(), evt.Balance.String(),
		evt.TransactionCount, t.RiskBase.String(), t.CollateralAvailable.String(),
		t.CollateralPercent.String(), t.InterestRate.String(), t.MaxLoan.String(),
	)
	return err
}

func (r *SQLRecorder) RecordSync(evt *SyncEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(r.db.Rebind(`INSERT INTO sync_runs
		(timestamp, wallet, account_id, transaction_count, error)
		VALUES (?,?,?,?,?)`),
		r.now().Unix(), evt.Wallet, evt.AccountID, evt.TransactionCount, evt.Error,
	)
	return err
}

func (r *SQLRecorder) Close() error {
	r.logger.Info("closing assessment recorder")
	return nil
}
