package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/medstore/internal/i18n"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "medstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func validConfig() *Config {
	cfg := Default()
	cfg.Session.Secret = testSecret
	return cfg
}

// ============================================
// Load Tests
// ============================================

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, CatalogStatic, cfg.Catalog.Source)
	assert.Equal(t, NotifierLog, cfg.Notifier.Kind)
	assert.Equal(t, i18n.Arabic, cfg.Language())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":9090"
session:
  secret: "`+testSecret+`"
  idle_ttl: 45m
  default_language: en
shipping:
  threshold: "750.00"
  fee: "30"
checkout:
  recipient: sales@example.com
  timeout: 3s
notifier:
  kind: kafka
kafka:
  brokers: [k1:9092, k2:9092]
  topic: orders
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 45*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, i18n.English, cfg.Language())
	assert.Equal(t, "sales@example.com", cfg.Checkout.Recipient)
	assert.Equal(t, 3*time.Second, cfg.Checkout.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "orders", cfg.Kafka.Topic)
	// Untouched sections keep their defaults
	assert.Equal(t, "medstore-notifier", cfg.Kafka.GroupID)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TokenTTL)

	policy, err := cfg.ShippingPolicy()
	require.NoError(t, err)
	assert.True(t, policy.Threshold.Equal(decimal.NewFromInt(750)))
	assert.True(t, policy.Fee.Equal(decimal.NewFromInt(30)))
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "notifier:\n  kind: smtp\nsmtp:\n  host: mail.local\n")
	t.Setenv("NOTIFIER_KIND", "log")
	t.Setenv("SMTP_HOST", "mail.internal")
	t.Setenv("KAFKA_BROKERS", "a:1, b:2,,")
	t.Setenv("SESSION_IDLE_TTL", "10m")
	t.Setenv("CHECKOUT_BURST", "5")
	t.Setenv("NOTIFIER_RECIPIENT_OVERRIDE", "ops@example.com")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, NotifierLog, cfg.Notifier.Kind)
	assert.Equal(t, "mail.internal", cfg.SMTP.Host)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, 5, cfg.Checkout.Burst)
	assert.Equal(t, "ops@example.com", cfg.Notifier.RecipientOverride)
}

func TestLoad_BadEnvDuration(t *testing.T) {
	t.Setenv("NOTIFIER_TIMEOUT", "soon")

	_, err := Load("")

	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_ZeroSweepIntervalFailsValidation(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("SESSION_SWEEP_INTERVAL", "0s")

	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "sweep interval")
}

func TestLoad_SessionCreateLimitFromEnv(t *testing.T) {
	t.Setenv("SESSION_CREATE_RATE_PER_SECOND", "0.5")
	t.Setenv("SESSION_CREATE_BURST", "4")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Session.CreateRatePerSecond)
	assert.Equal(t, 4, cfg.Session.CreateBurst)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "http: [not, a, map")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

// ============================================
// Validate Tests
// ============================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.Session.Secret = "" }, "session secret is required"},
		{"short secret", func(c *Config) { c.Session.Secret = "short" }, "at least 32 characters"},
		{"unknown catalog", func(c *Config) { c.Catalog.Source = "csv" }, `unknown catalog source "csv"`},
		{"postgres without url", func(c *Config) {
			c.Catalog.Source = CatalogPostgres
			c.Catalog.DatabaseURL = ""
		}, "database url is required"},
		{"unknown notifier", func(c *Config) { c.Notifier.Kind = "sms" }, `unknown notifier kind "sms"`},
		{"smtp without host", func(c *Config) {
			c.Notifier.Kind = NotifierSMTP
			c.SMTP.Host = ""
		}, "smtp host and port are required"},
		{"kafka without brokers", func(c *Config) {
			c.Notifier.Kind = NotifierKafka
			c.Kafka.Brokers = nil
		}, "kafka brokers and topic are required"},
		{"bad fee", func(c *Config) { c.Shipping.Fee = "free" }, `shipping fee "free" is not a number`},
		{"negative threshold", func(c *Config) { c.Shipping.Threshold = "-1" }, "must not be negative"},
		{"zero burst", func(c *Config) { c.Checkout.Burst = 0 }, "rate and burst must be positive"},
		{"unsupported language", func(c *Config) { c.Session.DefaultLanguage = "fr" }, `default language "fr"`},
		{"zero session create burst", func(c *Config) { c.Session.CreateBurst = 0 }, "session create rate and burst must be positive"},
		{"negative idle ttl", func(c *Config) { c.Session.IdleTTL = -time.Minute }, "session idle ttl must not be negative"},
		{"negative checkout timeout", func(c *Config) { c.Checkout.Timeout = -time.Second }, "checkout timeout must not be negative"},
		{"zero token ttl", func(c *Config) { c.Session.TokenTTL = 0 }, "session token ttl must be positive"},
		{"zero sweep interval with expiry", func(c *Config) { c.Session.SweepInterval = 0 }, "sweep interval must be positive"},
		{"zero sweep interval without expiry", func(c *Config) {
			c.Session.IdleTTL = 0
			c.Session.SweepInterval = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLanguage_FallsBackToDefault(t *testing.T) {
	cfg := validConfig()
	cfg.Session.DefaultLanguage = "klingon"

	assert.Equal(t, i18n.Default, cfg.Language())
}
