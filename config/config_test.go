package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	t.Run("Overrides only the fields present", func(t *testing.T) {
		policy, err := ParsePolicy([]byte(`
reservation_ttl: 15m
fees:
  platform_percent: 7.5
`))
		require.NoError(t, err)

		cfg := LoadTestConfig().Checkout
		policy.Apply(&cfg)

		assert.Equal(t, 15*time.Minute, cfg.ReservationTTL)
		assert.Equal(t, 4*time.Hour, cfg.TransferCutoff)
		assert.True(t, decimal.RequireFromString("7.5").Equal(cfg.Fees.PlatformFeePercent))
		assert.True(t, decimal.NewFromInt(2).Equal(cfg.Fees.PaymentFeePercent))
		assert.True(t, decimal.NewFromInt(18).Equal(cfg.Fees.FeeTaxPercent))
	})

	t.Run("Rejects bad durations", func(t *testing.T) {
		_, err := ParsePolicy([]byte("transfer_cutoff: soon\n"))
		assert.ErrorContains(t, err, "transfer_cutoff")
	})

	t.Run("Rejects malformed YAML", func(t *testing.T) {
		_, err := ParsePolicy([]byte("fees: [1, 2"))
		assert.ErrorContains(t, err, "parse policy file")
	})
}

func TestLoadPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transfer_cutoff: 2h\n"), 0o600))

	policy, err := LoadPolicyFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2h", policy.TransferCutoff)

	_, err = LoadPolicyFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read policy file")
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("RESERVATION_TTL", "90s")
	t.Setenv("SWEEP_BATCH_SIZE", "50")
	t.Setenv("PLATFORM_FEE_PERCENT", "3")
	t.Setenv("PAYMENT_FEE_PERCENT", "not-a-number")
	t.Setenv("POLICY_FILE", "")

	cfg := LoadConfig()

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 90*time.Second, cfg.Checkout.ReservationTTL)
	assert.Equal(t, 50, cfg.Checkout.SweepBatchSize)
	assert.True(t, decimal.NewFromInt(3).Equal(cfg.Checkout.Fees.PlatformFeePercent))
	assert.True(t, decimal.NewFromInt(2).Equal(cfg.Checkout.Fees.PaymentFeePercent))
	assert.Same(t, AppConfig, cfg)
}

func TestPubNubEnabled(t *testing.T) {
	assert.False(t, PubNubConfig{}.Enabled())
	assert.False(t, PubNubConfig{PublishKey: "pub"}.Enabled())
	assert.True(t, PubNubConfig{PublishKey: "pub", SubscribeKey: "sub"}.Enabled())
}
