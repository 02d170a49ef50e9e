package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"LoanSentinel/internal/risk"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr       string        `yaml:"addr"`
		RateLimit  int           `yaml:"rate_limit"`
		RateWindow time.Duration `yaml:"rate_window"`
	} `yaml:"server"`
	RPC struct {
		ExposeErrorDetail bool `yaml:"expose_error_detail"`
	} `yaml:"rpc"`
	Plaid struct {
		BaseURL    string `yaml:"base_url"`
		ClientID   string `yaml:"client_id"`
		Secret     string `yaml:"secret"`
		WindowDays int    `yaml:"window_days"`
		Mock       bool   `yaml:"mock"`
	} `yaml:"plaid"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Redis struct {
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"redis"`
	Crypto struct {
		SecretKey string `yaml:"secret_key"`
	} `yaml:"crypto"`
	Schedule struct {
		SyncCron   string `yaml:"sync_cron"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Policy struct {
		MaxLoan                    *decimal.Decimal `yaml:"max_loan"`
		MinIR                      *decimal.Decimal `yaml:"min_ir"`
		MaxIR                      *decimal.Decimal `yaml:"max_ir"`
		CollateralPercentOfBalance *decimal.Decimal `yaml:"collateral_percent_of_balance"`
		CollateralBasePercent      *decimal.Decimal `yaml:"collateral_base_percent"`
	} `yaml:"policy"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then .env, then applies environment
// variable overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PLAID_BASE_URL"); v != "" {
		cfg.Plaid.BaseURL = v
	}
	if v := os.Getenv("PLAID_CLIENT_ID"); v != "" {
		cfg.Plaid.ClientID = v
	}
	if v := os.Getenv("PLAID_SECRET"); v != "" {
		cfg.Plaid.Secret = v
	}
	if v := os.Getenv("PLAID_MOCK"); v != "" {
		cfg.Plaid.Mock = parseBool(v, cfg.Plaid.Mock)
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.Crypto.SecretKey = v
	}
	if v := os.Getenv("CRON_SYNC"); v != "" {
		cfg.Schedule.SyncCron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		cfg.Schedule.RunOnStart = parseBool(v, cfg.Schedule.RunOnStart)
	}
	if v := os.Getenv("RPC_EXPOSE_ERROR_DETAIL"); v != "" {
		cfg.RPC.ExposeErrorDetail = parseBool(v, cfg.RPC.ExposeErrorDetail)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 60
	}
	if cfg.Server.RateWindow == 0 {
		cfg.Server.RateWindow = time.Minute
	}
	if cfg.Plaid.BaseURL == "" {
		cfg.Plaid.BaseURL = "https://sandbox.plaid.com"
	}
	if cfg.Plaid.WindowDays == 0 {
		cfg.Plaid.WindowDays = 60
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "data/loan_sentinel.db"
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 5 * time.Minute
	}
	if cfg.Schedule.SyncCron == "" {
		cfg.Schedule.SyncCron = "0 0 */6 * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if !c.Plaid.Mock {
		if c.Plaid.ClientID == "" {
			return fmt.Errorf("plaid.client_id is required")
		}
		if c.Plaid.Secret == "" {
			return fmt.Errorf("plaid.secret is required")
		}
	}
	if c.Plaid.WindowDays <= 0 {
		return fmt.Errorf("plaid.window_days must be positive")
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if key, err := hex.DecodeString(c.Crypto.SecretKey); err != nil || len(key) != 32 {
		return fmt.Errorf("crypto.secret_key must be 64 hex characters")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := c.LendingPolicy(); err != nil {
		return err
	}
	return nil
}

// LendingPolicy builds the risk policy, falling back to defaults field by field.
func (c *Config) LendingPolicy() (risk.Policy, error) {
	p := risk.DefaultPolicy()
	if v := c.Policy.MaxLoan; v != nil {
		p.MaxLoan = *v
	}
	if v := c.Policy.MinIR; v != nil {
		p.MinIR = *v
	}
	if v := c.Policy.MaxIR; v != nil {
		p.MaxIR = *v
	}
	if v := c.Policy.CollateralPercentOfBalance; v != nil {
		p.CollateralPercentOfBalance = *v
	}
	if v := c.Policy.CollateralBasePercent; v != nil {
		p.CollateralBasePercent = *v
	}
	if err := p.Validate(); err != nil {
		return risk.Policy{}, fmt.Errorf("policy: %w", err)
	}
	return p, nil
}

func parseBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
