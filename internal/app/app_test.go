package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/app"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
)

const fixture = `
events:
  - id: evt-1
    name: Launch Night
    kind: paid
    starts_at: 2030-01-01T20:00:00Z
    tiers:
      - id: ga
        name: General
        price: "999.50"
        quantity: 200
        max_per_order: 6
      - id: couple
        name: Couple Entry
        price: "1500"
        quantity: 40
        couple: true
        deferred: true
  - id: evt-2
    name: Open House
    kind: rsvp
    starts_at: 2030-02-01T18:00:00Z
    tiers:
      - id: rsvp
        name: Free
        quantity: 50
        gender: female
promo_codes:
  - id: promo-1
    code: EARLY10
    event_id: evt-1
    discount:
      type: percent
      value: "10"
    max_redemptions: 100
    max_per_user: 1
    tiers: [ga]
promoter_links:
  - code: DJ-ANNA
    event_id: evt-1
    discount:
      type: fixed
      value: "50"
    excluded_tiers: [couple]
users:
  - id: u1
    email: u1@example.com
    name: Asha
    gender: female
`

func TestParseSeed(t *testing.T) {
	seed, err := app.ParseSeed([]byte(fixture))
	require.NoError(t, err)

	require.Len(t, seed.Events, 2)
	assert.Equal(t, "999.50", seed.Events[0].Tiers[0].Price)
	assert.True(t, seed.Events[0].Tiers[1].Couple)
	assert.Equal(t, []string{"ga"}, seed.PromoCodes[0].Tiers)
	assert.Equal(t, "DJ-ANNA", seed.PromoterLinks[0].Code)

	_, err = app.ParseSeed([]byte("events: {"))
	assert.ErrorContains(t, err, "parse seed file")
}

func TestSeedApply(t *testing.T) {
	ctx := context.Background()
	engine, err := app.New(config.LoadTestConfig())
	require.NoError(t, err)
	defer engine.Close()

	seed, err := app.ParseSeed([]byte(fixture))
	require.NoError(t, err)
	require.NoError(t, seed.Apply(ctx, engine.Tx, engine.Repos))

	event, err := engine.Repos.Events.FindByID(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, model.EventKindPaid, event.Kind)
	require.Len(t, event.Tiers, 2)

	tiers := map[string]model.TicketTier{}
	for _, tier := range event.Tiers {
		tiers[tier.ID] = tier
	}
	assert.True(t, decimal.RequireFromString("999.5").Equal(tiers["ga"].BasePrice))
	assert.Equal(t, model.GenderAny, tiers["ga"].GenderRequirement)
	assert.True(t, tiers["couple"].IsCouple)
	assert.True(t, tiers["couple"].DeferredInventory)

	rsvp, err := engine.Repos.Events.FindByID(ctx, "evt-2")
	require.NoError(t, err)
	require.Len(t, rsvp.Tiers, 1)
	assert.True(t, rsvp.Tiers[0].BasePrice.IsZero())
	assert.Equal(t, model.GenderFemale, rsvp.Tiers[0].GenderRequirement)

	profile, err := engine.Repos.Users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.GenderIsFemale, profile.Gender)

	availability, err := engine.Reservations.GetAvailability(ctx, "evt-1")
	require.NoError(t, err)
	assert.Len(t, availability, 2)
}

func TestSeedApplyRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		fixture string
		wantErr string
	}{
		{
			name:    "Unknown event kind",
			fixture: "events:\n  - id: e\n    kind: concert\n",
			wantErr: "unknown kind",
		},
		{
			name:    "Bad price",
			fixture: "events:\n  - id: e\n    kind: paid\n    tiers:\n      - id: t\n        price: cheap\n",
			wantErr: "price",
		},
		{
			name:    "Tier id with the ticket separator",
			fixture: "events:\n  - id: e\n    kind: paid\n    tiers:\n      - id: vip~1\n        price: \"10\"\n",
			wantErr: "must not contain",
		},
		{
			name:    "Bad discount type",
			fixture: "promo_codes:\n  - id: p\n    code: X\n    discount:\n      type: bogo\n      value: \"1\"\n",
			wantErr: "unknown discount type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := app.New(config.LoadTestConfig())
			require.NoError(t, err)

			seed, err := app.ParseSeed([]byte(tt.fixture))
			require.NoError(t, err)

			assert.ErrorContains(t, seed.Apply(ctx, engine.Tx, engine.Repos), tt.wantErr)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("Memory driver wires every service", func(t *testing.T) {
		engine, err := app.New(config.LoadTestConfig())
		require.NoError(t, err)
		defer engine.Close()

		assert.NotNil(t, engine.Reservations)
		assert.NotNil(t, engine.Pricing)
		assert.NotNil(t, engine.Checkout)
		assert.NotNil(t, engine.Shares)
		assert.NotNil(t, engine.Transfers)
		assert.NotNil(t, engine.Scans)
		assert.Len(t, engine.Handlers(), 5)
		assert.NoError(t, engine.Migrate(context.Background()))
	})

	t.Run("Unknown store driver", func(t *testing.T) {
		cfg := config.LoadTestConfig()
		cfg.StoreDriver = "sqlite"

		_, err := app.New(cfg)
		assert.ErrorContains(t, err, "unknown store driver")
	})

	t.Run("Unknown payment gateway", func(t *testing.T) {
		cfg := config.LoadTestConfig()
		cfg.Checkout.PaymentGateway = "stripe"

		_, err := app.New(cfg)
		assert.ErrorContains(t, err, "unknown payment gateway")
	})

	t.Run("Sandbox gateway needs a secret", func(t *testing.T) {
		cfg := config.LoadTestConfig()
		cfg.Checkout.GatewaySecret = ""

		_, err := app.New(cfg)
		assert.ErrorContains(t, err, "PAYMENT_GATEWAY_SECRET")
	})

	t.Run("QR secret is required", func(t *testing.T) {
		cfg := config.LoadTestConfig()
		cfg.Checkout.QRSecret = ""

		_, err := app.New(cfg)
		assert.ErrorContains(t, err, "qr signer")
	})
}

func TestStartBackground(t *testing.T) {
	engine, err := app.New(config.LoadTestConfig())
	require.NoError(t, err)
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	stop, err := engine.StartBackground(ctx)
	require.NoError(t, err)
	require.NotNil(t, stop)
	stop()
}
