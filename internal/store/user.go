package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"LoanSentinel/internal/model"
)

// ErrNotFound is returned when no user is registered for a wallet.
var ErrNotFound = errors.New("user not found")

// UserStore persists borrowers, their encrypted provider tokens and the
// most recently fetched transaction window per account.
type UserStore struct {
	db     *DB
	logger *logrus.Logger
	mu     sync.Mutex
	now    func() time.Time
}

// NewUserStore creates the store and runs its migrations.
func NewUserStore(db *DB, logger *logrus.Logger) (*UserStore, error) {
	s := &UserStore{db: db, logger: logger, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate user store: %w", err)
	}
	return s, nil
}

func (s *UserStore) migrate() error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id                 %s,
			wallet             TEXT NOT NULL UNIQUE,
			plaid_access_token TEXT NOT NULL DEFAULT '',
			plaid_income       TEXT NOT NULL DEFAULT '',
			created_at         BIGINT NOT NULL,
			updated_at         BIGINT NOT NULL
		)`, s.db.AutoIncrementPK()),

		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id TEXT NOT NULL,
			wallet         TEXT NOT NULL,
			account_id     TEXT NOT NULL,
			amount         TEXT NOT NULL,
			date           TEXT NOT NULL,
			name           TEXT NOT NULL DEFAULT '',
			pending        INTEGER NOT NULL DEFAULT 0,
			fetched_at     BIGINT NOT NULL,
			PRIMARY KEY (transaction_id, wallet)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(wallet, account_id)`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("exec %q: %w", q[:40], err)
		}
	}
	return nil
}

// CreateUser registers a wallet. Creating an existing wallet is a no-op.
func (s *UserStore) CreateUser(ctx context.Context, wallet string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Unix()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO users (wallet, created_at, updated_at)
		VALUES (?, ?, ?) ON CONFLICT (wallet) DO NOTHING`), wallet, now, now)
	if err != nil {
		return fmt.Errorf("create user %s: %w", wallet, err)
	}
	return nil
}

// ResolveIdentity looks a borrower up by wallet ID.
func (s *UserStore) ResolveIdentity(ctx context.Context, wallet string) (*model.Identity, error) {
	var (
		id               model.Identity
		income           string
		created, updated int64
	)
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`SELECT id, wallet, plaid_access_token, plaid_income, created_at, updated_at
		FROM users WHERE wallet = ?`), wallet).Scan(
		&id.ID, &id.Wallet, &id.EncryptedToken, &income, &created, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wallet %s: %w", wallet, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query user %s: %w", wallet, err)
	}
	if income != "" {
		id.Income = json.RawMessage(income)
	}
	id.CreatedAt = time.Unix(created, 0).UTC()
	id.UpdatedAt = time.Unix(updated, 0).UTC()
	return &id, nil
}

// SaveCredential stores the encrypted provider token for a wallet.
func (s *UserStore) SaveCredential(ctx context.Context, wallet, ciphertext string) error {
	return s.updateUser(ctx, wallet, "plaid_access_token", ciphertext)
}

// SaveIncome stores the raw income report returned by the provider.
func (s *UserStore) SaveIncome(ctx context.Context, wallet string, income json.RawMessage) error {
	return s.updateUser(ctx, wallet, "plaid_income", string(income))
}

func (s *UserStore) updateUser(ctx context.Context, wallet, column, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(fmt.Sprintf(`UPDATE users SET %s = ?, updated_at = ? WHERE wallet = ?`, column)),
		value, s.now().Unix(), wallet,
	)
	if err != nil {
		return fmt.Errorf("update %s for %s: %w", column, wallet, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("wallet %s: %w", wallet, ErrNotFound)
	}
	return nil
}

// SaveTransactions upserts a fetched transaction window for an account.
func (s *UserStore) SaveTransactions(ctx context.Context, wallet, accountID string, txns []model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.db.Rebind(`INSERT INTO transactions
		(transaction_id, wallet, account_id, amount, date, name, pending, fetched_at)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT (transaction_id, wallet) DO UPDATE SET
			account_id = excluded.account_id,
			amount     = excluded.amount,
			date       = excluded.date,
			name       = excluded.name,
			pending    = excluded.pending,
			fetched_at = excluded.fetched_at`))
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := s.now().Unix()
	for _, t := range txns {
		account := t.AccountID
		if account == "" {
			account = accountID
		}
		pending := 0
		if t.Pending {
			pending = 1
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID, wallet, account, t.Amount.String(), t.Date.Format(time.DateOnly), t.Name, pending, now,
		); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"wallet": wallet, "account": accountID, "count": len(txns)}).
		Debug("transactions persisted")
	return nil
}

// WalletAccounts lists the accounts of one wallet that have a persisted window.
func (s *UserStore) WalletAccounts(ctx context.Context, wallet string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(`SELECT DISTINCT account_id FROM transactions
		WHERE wallet = ? ORDER BY account_id`), wallet)
	if err != nil {
		return nil, fmt.Errorf("query accounts of %s: %w", wallet, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var account string
		if err := rows.Scan(&account); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, account)
	}
	return out, rows.Err()
}

// LinkedAccounts lists every (wallet, account) pair with a persisted window.
func (s *UserStore) LinkedAccounts(ctx context.Context) ([]model.LinkedAccount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT wallet, account_id FROM transactions ORDER BY wallet, account_id`)
	if err != nil {
		return nil, fmt.Errorf("query linked accounts: %w", err)
	}
	defer rows.Close()

	var out []model.LinkedAccount
	for rows.Next() {
		var la model.LinkedAccount
		if err := rows.Scan(&la.Wallet, &la.AccountID); err != nil {
			return nil, fmt.Errorf("scan linked account: %w", err)
		}
		out = append(out, la)
	}
	return out, rows.Err()
}
