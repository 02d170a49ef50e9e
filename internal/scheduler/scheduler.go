package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"LoanSentinel/internal/model"
	"LoanSentinel/internal/recorder"
)

// AccountSource lists linked accounts and resolves their owners.
type AccountSource interface {
	LinkedAccounts(ctx context.Context) ([]model.LinkedAccount, error)
	ResolveIdentity(ctx context.Context, wallet string) (*model.Identity, error)
}

// CredentialOpener decrypts a stored provider credential.
type CredentialOpener interface {
	Open(identity *model.Identity) (model.ProviderCredential, error)
}

// Refresher re-fetches an account's transaction window.
type Refresher interface {
	Refresh(ctx context.Context, wallet, accountID string, cred model.ProviderCredential, windowDays int) ([]model.Transaction, error)
}

// SyncRecorder records the outcome of each account refresh.
type SyncRecorder interface {
	RecordSync(evt *recorder.SyncEvent) error
}

// SyncSummary counts the outcome of one sync run.
type SyncSummary struct {
	Synced int
	Failed int
}

// Scheduler manages the periodic transaction sync.
type Scheduler struct {
	Cron       *cron.Cron
	Accounts   AccountSource
	Vault      CredentialOpener
	Refresher  Refresher
	Recorder   SyncRecorder
	WindowDays int
	Ctx        context.Context

	logger *logrus.Logger
}

// NewScheduler creates a new Scheduler. Overlapping runs are skipped.
func NewScheduler(ctx context.Context, accounts AccountSource, vault CredentialOpener, refresher Refresher, rec SyncRecorder, windowDays int, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))),
		),
		Accounts:   accounts,
		Vault:      vault,
		Refresher:  refresher,
		Recorder:   rec,
		WindowDays: windowDays,
		Ctx:        ctx,
		logger:     logger,
	}
}

// RegisterAll registers the sync task.
func (s *Scheduler) RegisterAll(syncCron string) error {
	if _, err := s.Cron.AddFunc(syncCron, s.syncTask); err != nil {
		return fmt.Errorf("register sync task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running sync to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunSyncNow executes the sync immediately (for RUN_ON_START).
func (s *Scheduler) RunSyncNow() (SyncSummary, error) {
	return s.SyncAll(s.Ctx)
}

func (s *Scheduler) syncTask() {
	if _, err := s.SyncAll(s.Ctx); err != nil {
		s.logger.WithError(err).Error("scheduled sync failed")
	}
}

// SyncAll refreshes every linked account. A failing account is recorded
// and skipped.
func (s *Scheduler) SyncAll(ctx context.Context) (SyncSummary, error) {
	var summary SyncSummary

	accounts, err := s.Accounts.LinkedAccounts(ctx)
	if err != nil {
		return summary, fmt.Errorf("list linked accounts: %w", err)
	}
	s.logger.WithField("accounts", len(accounts)).Info("running transaction sync")

	for _, acc := range accounts {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		count, err := s.syncAccount(ctx, acc)
		evt := &recorder.SyncEvent{Wallet: acc.Wallet, AccountID: acc.AccountID, TransactionCount: count}
		log := s.logger.WithFields(logrus.Fields{"wallet": acc.Wallet, "account": acc.AccountID})
		if err != nil {
			summary.Failed++
			evt.Error = err.Error()
			log.WithError(err).Warn("account sync failed")
		} else {
			summary.Synced++
			log.WithField("count", count).Debug("account synced")
		}
		if s.Recorder != nil {
			if err := s.Recorder.RecordSync(evt); err != nil {
				log.WithError(err).Error("record sync")
			}
		}
	}

	s.logger.WithFields(logrus.Fields{"synced": summary.Synced, "failed": summary.Failed}).Info("transaction sync finished")
	return summary, nil
}

func (s *Scheduler) syncAccount(ctx context.Context, acc model.LinkedAccount) (int, error) {
	identity, err := s.Accounts.ResolveIdentity(ctx, acc.Wallet)
	if err != nil {
		return 0, fmt.Errorf("resolve identity: %w", err)
	}
	cred, err := s.Vault.Open(identity)
	if err != nil {
		return 0, fmt.Errorf("decrypt credential: %w", err)
	}
	txns, err := s.Refresher.Refresh(ctx, acc.Wallet, acc.AccountID, cred, s.WindowDays)
	if err != nil {
		return 0, fmt.Errorf("refresh transactions: %w", err)
	}
	return len(txns), nil
}
