package external_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/external"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository/memory"
)

func TestSandboxGateway(t *testing.T) {
	ctx := context.Background()
	gateway := external.NewSandboxGateway("secret")
	amount := decimal.RequireFromString("1180.00")

	order, err := gateway.CreateOrder(ctx, "ord-1", amount)
	require.NoError(t, err)
	assert.Equal(t, "INR", order.Currency)
	assert.True(t, amount.Equal(order.Amount))

	t.Run("Valid signature", func(t *testing.T) {
		sig := gateway.SignatureFor(order.ID, "pay-1")

		v, err := gateway.VerifyPayment(ctx, order.ID, "pay-1", sig)

		require.NoError(t, err)
		assert.True(t, v.Verified)
		assert.True(t, amount.Equal(v.Amount))
	})

	t.Run("Signature bound to payment id", func(t *testing.T) {
		sig := gateway.SignatureFor(order.ID, "pay-1")

		v, err := gateway.VerifyPayment(ctx, order.ID, "pay-2", sig)

		require.NoError(t, err)
		assert.False(t, v.Verified)
	})

	t.Run("Different secret", func(t *testing.T) {
		other := external.NewSandboxGateway("other")
		assert.NotEqual(t, gateway.SignatureFor(order.ID, "pay-1"), other.SignatureFor(order.ID, "pay-1"))
	})

	t.Run("Unknown order", func(t *testing.T) {
		_, err := gateway.VerifyPayment(ctx, "gw_missing", "pay-1", "00")
		assert.Error(t, err)
	})
}

func TestRepositoryDirectory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	require.NoError(t, repos.Users.Upsert(ctx, &model.Profile{UserID: "u1", Email: "u1@example.com", Gender: model.GenderIsFemale}))

	directory := external.NewRepositoryDirectory(repos.Users)

	profile, err := directory.Lookup(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.GenderIsFemale, profile.Gender)
}

func TestLogNotifier(t *testing.T) {
	err := external.NewLogNotifier().NotifyOrderConfirmed(context.Background(), model.OrderConfirmedEvent{OrderID: "ord-1"})
	assert.NoError(t, err)
}

func TestNewPubNubNotifier(t *testing.T) {
	_, err := external.NewPubNubNotifier(config.PubNubConfig{UserID: "engine"})
	assert.Error(t, err)

	n, err := external.NewPubNubNotifier(config.PubNubConfig{PublishKey: "pub-c", SubscribeKey: "sub-c", UserID: "engine"})
	require.NoError(t, err)
	assert.NotNil(t, n)
	assert.Equal(t, "orders-u1", external.BuyerChannel("u1"))
}
