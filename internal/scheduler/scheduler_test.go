package scheduler

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LoanSentinel/internal/collector"
	"LoanSentinel/internal/crypto"
	"LoanSentinel/internal/model"
	"LoanSentinel/internal/recorder"
	"LoanSentinel/internal/store"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

type captureRecorder struct {
	mu     sync.Mutex
	events []recorder.SyncEvent
}

func (c *captureRecorder) RecordSync(evt *recorder.SyncEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, *evt)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestScheduler_SyncAll(t *testing.T) {
	ctx := context.Background()
	logger := quietLogger()

	db, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	users, err := store.NewUserStore(db, logger)
	require.NoError(t, err)

	vault, err := crypto.NewVault(testKey)
	require.NoError(t, err)

	require.NoError(t, users.CreateUser(ctx, "0xalice"))
	require.NoError(t, users.CreateUser(ctx, "0xbob"))
	sealed, err := vault.Seal("access-alice")
	require.NoError(t, err)
	require.NoError(t, users.SaveCredential(ctx, "0xalice", sealed))

	day := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	seed := func(wallet, account string) {
		require.NoError(t, users.SaveTransactions(ctx, wallet, account, []model.Transaction{
			{ID: wallet + "-seed", AccountID: account, Amount: decimal.NewFromInt(1), Date: day},
		}))
	}
	seed("0xalice", "acc-1")
	seed("0xbob", "acc-2") // bob never linked a credential

	fetcher := &collector.MockFetcher{Transactions: []model.Transaction{
		{ID: "t1", AccountID: "acc-1", Amount: decimal.NewFromInt(25), Date: day.AddDate(0, 0, 5)},
		{ID: "t2", AccountID: "acc-1", Amount: decimal.NewFromInt(-40), Date: day.AddDate(0, 0, 3)},
	}}
	col := collector.NewCollector(fetcher, nil, 0, users, logger)
	rec := &captureRecorder{}

	s := NewScheduler(ctx, users, vault, col, rec, 60, logger)
	summary, err := s.RunSyncNow()
	require.NoError(t, err)

	assert.Equal(t, SyncSummary{Synced: 1, Failed: 1}, summary)
	assert.Equal(t, 1, fetcher.TransactionCalls())

	require.Len(t, rec.events, 2)
	assert.Equal(t, "0xalice", rec.events[0].Wallet)
	assert.Equal(t, 2, rec.events[0].TransactionCount)
	assert.Empty(t, rec.events[0].Error)
	assert.Equal(t, "0xbob", rec.events[1].Wallet)
	assert.True(t, strings.HasPrefix(rec.events[1].Error, "decrypt credential"), rec.events[1].Error)

	var stored int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE wallet = '0xalice'`).Scan(&stored))
	assert.Equal(t, 3, stored, "refreshed window persisted alongside the seed")
}

type failingSource struct{}

func (failingSource) LinkedAccounts(context.Context) ([]model.LinkedAccount, error) {
	return nil, errors.New("db closed")
}

func (failingSource) ResolveIdentity(context.Context, string) (*model.Identity, error) {
	return nil, errors.New("unreachable")
}

func TestScheduler_SyncAllListFailure(t *testing.T) {
	s := NewScheduler(context.Background(), failingSource{}, nil, nil, nil, 60, quietLogger())
	_, err := s.SyncAll(context.Background())
	assert.ErrorContains(t, err, "list linked accounts")
}

func TestScheduler_RegisterAll(t *testing.T) {
	s := NewScheduler(context.Background(), failingSource{}, nil, nil, nil, 60, quietLogger())

	assert.Error(t, s.RegisterAll("every tuesday"))
	require.NoError(t, s.RegisterAll("0 0 */6 * * *"))
	assert.Len(t, s.Cron.Entries(), 1)

	s.Start()
	s.Stop()
}
