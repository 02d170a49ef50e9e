package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"LISTEN_ADDR", "DATABASE_DRIVER", "DATABASE_DSN", "CRON_SYNC", "LOG_LEVEL", "PLAID_BASE_URL", "RUN_ON_START"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.Equal(t, "https://sandbox.plaid.com", cfg.Plaid.BaseURL)
	assert.Equal(t, 60, cfg.Plaid.WindowDays)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "0 0 */6 * * *", cfg.Schedule.SyncCron)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Schedule.RunOnStart)

	p, err := cfg.LendingPolicy()
	require.NoError(t, err)
	assert.Equal(t, "100", p.MaxLoan.String())
	assert.Equal(t, "0.08", p.MinIR.String())
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
  rate_window: 30s
plaid:
  client_id: yaml-client
  secret: yaml-secret
  window_days: 90
database:
  driver: postgres
  dsn: postgres://localhost/loans
redis:
  addr: localhost:6379
  ttl: 2m
crypto:
  secret_key: `+testKey+`
policy:
  max_loan: 250
  max_ir: "0.30"
log:
  level: debug
`)
	t.Setenv("PLAID_SECRET", "env-secret")
	t.Setenv("RUN_ON_START", "true")
	t.Setenv("RPC_EXPOSE_ERROR_DETAIL", "1")
	t.Setenv("LISTEN_ADDR", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
	assert.Equal(t, "yaml-client", cfg.Plaid.ClientID)
	assert.Equal(t, "env-secret", cfg.Plaid.Secret)
	assert.Equal(t, 90, cfg.Plaid.WindowDays)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 2*time.Minute, cfg.Redis.TTL)
	assert.True(t, cfg.Schedule.RunOnStart)
	assert.True(t, cfg.RPC.ExposeErrorDetail)

	p, err := cfg.LendingPolicy()
	require.NoError(t, err)
	assert.Equal(t, "250", p.MaxLoan.String())
	assert.Equal(t, "0.3", p.MaxIR.String())
	assert.Equal(t, "0.08", p.MinIR.String(), "unset fields keep defaults")
	assert.Equal(t, "1.35", p.CollateralBasePercent.String())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Setenv("DATABASE_DRIVER", "")
		t.Setenv("LOG_LEVEL", "")
		cfg, err := Load(writeConfig(t, "plaid:\n  client_id: c\n  secret: s\ncrypto:\n  secret_key: "+testKey+"\n"))
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing client id", func(c *Config) { c.Plaid.ClientID = "" }, "plaid.client_id"},
		{"missing secret", func(c *Config) { c.Plaid.Secret = "" }, "plaid.secret"},
		{"short key", func(c *Config) { c.Crypto.SecretKey = "abcd" }, "crypto.secret_key"},
		{"non hex key", func(c *Config) { c.Crypto.SecretKey = strings.Repeat("z", 64) }, "crypto.secret_key"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"inverted ir band", func(c *Config) {
			v := testDecimal("0.50")
			c.Policy.MinIR = &v
		}, "min_ir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("mock provider needs no credentials", func(t *testing.T) {
		cfg := valid(t)
		cfg.Plaid.ClientID, cfg.Plaid.Secret, cfg.Plaid.Mock = "", "", true
		assert.NoError(t, cfg.Validate())
	})
}

func testDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
