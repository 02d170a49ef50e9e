package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"LoanSentinel/internal/cache"
	"LoanSentinel/internal/model"
)

// DefaultWindowDays is the transaction history window used when none is given.
const DefaultWindowDays = 60

// TransactionSink persists a fetched transaction window.
type TransactionSink interface {
	SaveTransactions(ctx context.Context, wallet, accountID string, txns []model.Transaction) error
}

// Collector orchestrates provider fetches, windowing, ordering and caching.
type Collector struct {
	Fetcher  Fetcher
	Cache    cache.Cache
	CacheTTL time.Duration
	Sink     TransactionSink

	logger *logrus.Logger
	now    func() time.Time
}

// NewCollector creates a new Collector. cache and sink may be nil.
func NewCollector(fetcher Fetcher, c cache.Cache, ttl time.Duration, sink TransactionSink, logger *logrus.Logger) *Collector {
	return &Collector{
		Fetcher:  fetcher,
		Cache:    c,
		CacheTTL: ttl,
		Sink:     sink,
		logger:   logger,
		now:      time.Now,
	}
}

// AvailableBalance returns the current available balance of an account.
// Balances are always fetched live.
func (c *Collector) AvailableBalance(ctx context.Context, cred model.ProviderCredential, accountID string) (decimal.Decimal, error) {
	bal, err := c.Fetcher.FetchBalance(ctx, cred.AccessToken, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	c.logger.WithFields(logrus.Fields{
		"provider": c.Fetcher.Name(),
		"account":  accountID,
	}).Debug("balance fetched")
	return bal, nil
}

// Transactions returns the last windowDays of transactions, most recent
// first, serving from the cache when possible.
func (c *Collector) Transactions(ctx context.Context, wallet, accountID string, cred model.ProviderCredential, windowDays int) ([]model.Transaction, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	key := cacheKey(wallet, accountID, windowDays)

	if c.Cache != nil {
		raw, ok, err := c.Cache.Get(ctx, key)
		switch {
		case err != nil:
			c.logger.WithError(err).WithField("key", key).Warn("transaction cache read failed")
		case ok:
			var txns []model.Transaction
			if err := json.Unmarshal([]byte(raw), &txns); err == nil {
				return txns, nil
			}
			c.logger.WithField("key", key).Warn("discarding undecodable cache entry")
		}
	}
	return c.Refresh(ctx, wallet, accountID, cred, windowDays)
}

// Refresh fetches the window from the provider, bypassing the cache, and
// stores the result in the cache and the sink.
func (c *Collector) Refresh(ctx context.Context, wallet, accountID string, cred model.ProviderCredential, windowDays int) ([]model.Transaction, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	end := c.now().UTC()
	start := end.AddDate(0, 0, -windowDays)

	txns, err := c.Fetcher.FetchTransactions(ctx, cred.AccessToken, accountID, start, end)
	if err != nil {
		return nil, err
	}
	txns = mostRecentFirst(txns)

	log := c.logger.WithFields(logrus.Fields{
		"provider": c.Fetcher.Name(),
		"wallet":   wallet,
		"account":  accountID,
		"count":    len(txns),
	})
	log.Debug("transactions fetched")

	if c.Cache != nil {
		if raw, err := json.Marshal(txns); err == nil {
			if err := c.Cache.Set(ctx, cacheKey(wallet, accountID, windowDays), string(raw), c.CacheTTL); err != nil {
				log.WithError(err).Warn("transaction cache write failed")
			}
		}
	}
	if c.Sink != nil {
		if err := c.Sink.SaveTransactions(ctx, wallet, accountID, txns); err != nil {
			log.WithError(err).Warn("persist transactions failed")
		}
	}
	return txns, nil
}

// Forget drops the cached window of an account.
func (c *Collector) Forget(ctx context.Context, wallet, accountID string, windowDays int) error {
	if c.Cache == nil {
		return nil
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return c.Cache.Delete(ctx, cacheKey(wallet, accountID, windowDays))
}

// ExchangePublicToken trades a link token for a long-lived credential.
func (c *Collector) ExchangePublicToken(ctx context.Context, publicToken string) (model.ProviderCredential, error) {
	token, err := c.Fetcher.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return model.ProviderCredential{}, err
	}
	return model.ProviderCredential{AccessToken: token}, nil
}

// Income returns the provider's income report for the credential.
func (c *Collector) Income(ctx context.Context, cred model.ProviderCredential) (json.RawMessage, error) {
	return c.Fetcher.FetchIncome(ctx, cred.AccessToken)
}

// mostRecentFirst returns a copy ordered by date descending. Entries on the
// same date keep the provider's order.
func mostRecentFirst(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func cacheKey(wallet, accountID string, windowDays int) string {
	return fmt.Sprintf("txns:%s:%s:%d", wallet, accountID, windowDays)
}
