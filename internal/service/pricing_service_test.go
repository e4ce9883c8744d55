package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

func TestPricingQuote(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *engine {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid,
			tierSpec{id: "ga", price: 1000, quantity: 10},
			tierSpec{id: "vip", price: 3000, quantity: 10},
		)
		require.NoError(t, e.repos.Promos.SavePromoCode(ctx, &model.PromoCode{
			ID:              "promo-1",
			Code:            "WELCOME",
			EventID:         "evt-1",
			Discount:        model.Discount{Type: model.DiscountPercent, Value: decimal.NewFromInt(10)},
			MaxPerUser:      1,
			Active:          true,
			EligibleTierIDs: []string{"ga"},
		}))
		require.NoError(t, e.repos.Promos.SavePromoterLink(ctx, &model.PromoterLink{
			Code:     "DJ",
			EventID:  "evt-1",
			Discount: model.Discount{Type: model.DiscountFixed, Value: decimal.NewFromInt(100)},
			Active:   true,
		}))
		return e
	}

	t.Run("Promo applies to eligible lines only", func(t *testing.T) {
		e := setup(t)

		quote, err := e.pricing.Quote(ctx, model.QuoteRequest{
			EventID:        "evt-1",
			Items:          []model.ItemRequest{{TierID: "ga", Quantity: 2}, {TierID: "vip", Quantity: 1}},
			PricingOptions: model.PricingOptions{PromoCode: "welcome"},
		})
		require.NoError(t, err)

		assert.Equal(t, "5000.00", quote.Subtotal.StringFixed(2))
		assert.Equal(t, "200.00", quote.PromoDiscount.StringFixed(2))
		assert.Equal(t, "promo-1", quote.PromoCodeID)
		assert.Empty(t, quote.PromoCodeError)
	})

	t.Run("Unknown promo is reported, not fatal", func(t *testing.T) {
		e := setup(t)

		quote, err := e.pricing.Quote(ctx, model.QuoteRequest{
			EventID:        "evt-1",
			Items:          []model.ItemRequest{{TierID: "ga", Quantity: 1}},
			PricingOptions: model.PricingOptions{PromoCode: "NOPE", PromoterCode: "unknown"},
		})
		require.NoError(t, err)

		assert.Equal(t, apperrors.ErrPromoCodeNotFound.Error(), quote.PromoCodeError)
		assert.True(t, quote.PromoDiscount.IsZero())
		assert.True(t, quote.PromoterDiscount.IsZero())
	})

	t.Run("Promoter discount per ticket", func(t *testing.T) {
		e := setup(t)

		quote, err := e.pricing.Quote(ctx, model.QuoteRequest{
			EventID:        "evt-1",
			Items:          []model.ItemRequest{{TierID: "ga", Quantity: 3}},
			PricingOptions: model.PricingOptions{PromoterCode: "dj"},
		})
		require.NoError(t, err)

		assert.Equal(t, "300.00", quote.PromoterDiscount.StringFixed(2))
		assert.Equal(t, "DJ", quote.PromoterCode)
	})

	t.Run("Failed - bad items", func(t *testing.T) {
		e := setup(t)

		_, err := e.pricing.Quote(ctx, model.QuoteRequest{
			EventID: "evt-1",
			Items:   []model.ItemRequest{{TierID: "ga", Quantity: 0}, {TierID: "nope", Quantity: 1}},
		})

		var verrs apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})

	t.Run("Per user cap counts confirmed orders", func(t *testing.T) {
		e := setup(t)
		reservation := e.reserve(t, "evt-1", "u1", "ga", 1)
		initiated, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: reservation.ID, PromoCode: "WELCOME"})
		require.NoError(t, err)
		require.Equal(t, "promo-1", initiated.Order.PromoCodeID)
		_, err = e.checkout.ConfirmPayment(ctx, e.paymentFor(initiated, "pay_1"))
		require.NoError(t, err)

		promo, err := e.repos.Promos.FindPromoCode(ctx, "evt-1", "WELCOME")
		require.NoError(t, err)
		assert.Equal(t, 1, promo.Redemptions)

		quote, err := e.pricing.Quote(ctx, model.QuoteRequest{
			EventID:        "evt-1",
			Items:          []model.ItemRequest{{TierID: "ga", Quantity: 1}},
			PricingOptions: model.PricingOptions{PromoCode: "WELCOME", BuyerID: "u1"},
		})
		require.NoError(t, err)
		assert.Equal(t, apperrors.ErrPromoCodeExhausted.Error(), quote.PromoCodeError)
	})
}
