package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"LoanSentinel/internal/cache"
	"LoanSentinel/internal/collector"
	"LoanSentinel/internal/config"
	"LoanSentinel/internal/crypto"
	"LoanSentinel/internal/recorder"
	"LoanSentinel/internal/rpc"
	"LoanSentinel/internal/scheduler"
	"LoanSentinel/internal/service"
	"LoanSentinel/internal/store"
)

func main() {
	createUser := flag.String("create-user", "", "register a wallet and exit")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("config validation")
	}
	level, _ := logrus.ParseLevel(cfg.Log.Level)
	logger.SetLevel(level)
	logger.Info("LoanSentinel starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init store
	if cfg.Database.Driver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0o755); err != nil {
			logger.WithError(err).Fatal("create database directory")
		}
	}
	db, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.WithError(err).Fatal("open database")
	}
	defer db.Close()

	users, err := store.NewUserStore(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("init user store")
	}

	if *createUser != "" {
		if err := users.CreateUser(ctx, *createUser); err != nil {
			logger.WithError(err).Fatal("create user")
		}
		logger.WithField("wallet", *createUser).Info("user created")
		return
	}

	vault, err := crypto.NewVault(cfg.Crypto.SecretKey)
	if err != nil {
		logger.WithError(err).Fatal("init credential vault")
	}

	// Init transaction cache
	var txCache cache.Cache = cache.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, "loansentinel:")
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, using in-memory cache")
		} else {
			txCache = rc
			defer rc.Close()
		}
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.Plaid.Mock {
		fetcher = &collector.MockFetcher{Balance: decimal.NewFromInt(1000)}
	} else {
		fetcher = collector.NewPlaidFetcher(cfg.Plaid.BaseURL, cfg.Plaid.ClientID, cfg.Plaid.Secret, cfg.Proxy)
	}
	logger.WithField("provider", fetcher.Name()).Info("data source ready")

	col := collector.NewCollector(fetcher, txCache, cfg.Redis.TTL, users, logger)

	// Init recorder
	var rec recorder.Recorder
	if sr, err := recorder.NewSQLRecorder(db, logger); err != nil {
		logger.WithError(err).Warn("init sql recorder failed, using noop")
		rec = recorder.NewNoopRecorder()
	} else {
		rec = sr
	}
	defer rec.Close()

	policy, err := cfg.LendingPolicy()
	if err != nil {
		logger.WithError(err).Fatal("lending policy")
	}
	svc := service.NewLoanService(users, vault, col, rec, policy, cfg.Plaid.WindowDays, logger)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, users, vault, col, rec, cfg.Plaid.WindowDays, logger)
	if err := sched.RegisterAll(cfg.Schedule.SyncCron); err != nil {
		logger.WithError(err).Fatal("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Schedule.RunOnStart {
		logger.Info("run_on_start enabled, syncing transactions now")
		go func() {
			if _, err := sched.RunSyncNow(); err != nil {
				logger.WithError(err).Error("startup sync failed")
			}
		}()
	}

	// HTTP server
	var limiter *rpc.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = rpc.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		defer limiter.Stop()
	}
	handler := rpc.NewHandler(svc, logger, cfg.RPC.ExposeErrorDetail)
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           rpc.NewRouter(handler, limiter, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.Server.Addr).Info("JSON-RPC server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server error")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}
	logger.Info("LoanSentinel stopped")
}
