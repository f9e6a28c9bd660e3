package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master":  map[string]any{"userName": "user"},
		},
		"order": map[string]any{
			"deliveryFee":   500,
			"numberRetries": 5,
		},
		"secretKey": map[string]any{"access": ""},
	}

	tests := map[string]string{
		"POSTGRES_SSLMODE":         "postgres.sslMode",
		"POSTGRES_MASTER_USERNAME": "postgres.master.userName",
		"ORDER_DELIVERYFEE":        "order.deliveryFee",
		"ORDER_NUMBER_RETRIES":     "order.number.retries",
		"SECRETKEY_ACCESS":         "secretKey.access",
		"RECEIPTS__BUCKETURL":      "receipts.bucketurl",
	}

	for envKey, want := range tests {
		t.Run(envKey, func(t *testing.T) {
			assert.Equal(t, want, canonicalizeEnvKey(envKey, existing))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, &CommissionConfig{DefaultRate: 8, MinRate: 0, MaxRate: 50}, cfg.Commission)
	assert.InDelta(t, 500.0, cfg.Order.DeliveryFee, 0)
	assert.Equal(t, 5, cfg.Order.NumberRetries)
	assert.Equal(t, "mem://", cfg.Receipts.BucketURL)
	assert.Equal(t, 8081, cfg.Worker.Port)
	require.NoError(t, validate(cfg))

	cfg = &Config{Order: &OrderConfig{DeliveryFee: 0, NumberRetries: 2}}
	applyDefaults(cfg)
	assert.Zero(t, cfg.Order.DeliveryFee)
	assert.Equal(t, 2, cfg.Order.NumberRetries)

	cfg.Commission.MaxRate = 10
	assert.InDelta(t, 50.0, DefaultCommission().MaxRate, 0, "defaults must not be shared")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{name: "default above max", mutate: func(cfg *Config) { cfg.Commission.DefaultRate = 60 }},
		{name: "negative min", mutate: func(cfg *Config) { cfg.Commission.MinRate = -1 }},
		{name: "max above 100", mutate: func(cfg *Config) { cfg.Commission.MaxRate = 120 }},
		{name: "negative delivery fee", mutate: func(cfg *Config) { cfg.Order.DeliveryFee = -5 }},
		{name: "unknown qr level", mutate: func(cfg *Config) { cfg.QRCode.ErrorCorrectionLevel = "X" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			assert.Error(t, validate(cfg))
		})
	}
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
env:
  env: test
  serviceName: marketplace
  log:
    level: info
    slowQuery: 150ms
order:
  deliveryFee: 500
  numberRetries: 5
pubsub:
  provider: kafka
  brokers: ["a:9092"]
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), yaml, 0o600))
	t.Chdir(dir)
	t.Setenv("ORDER_DELIVERYFEE", "750")
	t.Setenv("PUBSUB_BROKERS", "b:9092,c:9092")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "marketplace", cfg.Env.ServiceName)
	assert.Equal(t, 150*time.Millisecond, cfg.Env.Log.SlowQuery)
	assert.InDelta(t, 750.0, cfg.Order.DeliveryFee, 0)
	assert.Equal(t, []string{"b:9092", "c:9092"}, cfg.PubSub.Brokers)

	_, err = LoadWithEnv[Config]("missing")
	assert.Error(t, err)
}
