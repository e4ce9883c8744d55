package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/pricing"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, money(want).StringFixed(2), got.StringFixed(2), msgAndArgs...)
}

func TestResolve(t *testing.T) {
	base := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	tier := &model.TicketTier{
		ID:        "ga",
		BasePrice: money("100"),
		PriceWindows: []model.PriceWindow{
			{Start: base, End: base.Add(24 * time.Hour), Price: money("60"), Label: "early bird"},
			{Start: base.Add(12 * time.Hour), End: base.Add(48 * time.Hour), Price: money("80"), Label: "phase 2"},
		},
	}

	t.Run("Window start and end are inclusive", func(t *testing.T) {
		res := pricing.Resolve(tier, base)
		assert.True(t, res.IsScheduled)
		assertMoney(t, "60", res.UnitPrice)

		res = pricing.Resolve(tier, base.Add(24*time.Hour))
		assert.Equal(t, "early bird", res.ScheduleLabel)
	})

	t.Run("Overlapping windows resolve to the first declared", func(t *testing.T) {
		res := pricing.Resolve(tier, base.Add(18*time.Hour))
		assert.Equal(t, "early bird", res.ScheduleLabel)
		assertMoney(t, "60", res.UnitPrice)
	})

	t.Run("Later window after the first closes", func(t *testing.T) {
		res := pricing.Resolve(tier, base.Add(30*time.Hour))
		assert.Equal(t, "phase 2", res.ScheduleLabel)
		assertMoney(t, "80", res.UnitPrice)
	})

	t.Run("Falls back to base price", func(t *testing.T) {
		res := pricing.Resolve(tier, base.Add(72*time.Hour))
		assert.False(t, res.IsScheduled)
		assert.Empty(t, res.ScheduleLabel)
		assertMoney(t, "100", res.UnitPrice)
	})
}

func TestCalculator_Calculate(t *testing.T) {
	calc := pricing.NewCalculator(config.DefaultFeePolicy())

	t.Run("Paid order with fees", func(t *testing.T) {
		quote := calc.Calculate(pricing.Input{
			EventID: "evt",
			Paid:    true,
			Lines:   []pricing.Line{{TierID: "ga", Quantity: 2, UnitPrice: money("100")}},
		})

		assertMoney(t, "200", quote.Subtotal)
		assertMoney(t, "10", quote.PlatformFee)
		assertMoney(t, "4", quote.PaymentFee)
		assertMoney(t, "2.52", quote.Tax)
		assertMoney(t, "216.52", quote.Total)
		assert.False(t, quote.IsFree)
		require.Len(t, quote.Lines, 1)
		assertMoney(t, "200", quote.Lines[0].Subtotal)
	})

	t.Run("Rounds at every step", func(t *testing.T) {
		quote := calc.Calculate(pricing.Input{
			Paid:  true,
			Lines: []pricing.Line{{TierID: "ga", Quantity: 1, UnitPrice: money("10.10")}},
		})

		assertMoney(t, "0.51", quote.PlatformFee)
		assertMoney(t, "0.20", quote.PaymentFee)
		assertMoney(t, "0.13", quote.Tax)
		assertMoney(t, "10.94", quote.Total)
	})

	t.Run("Unit price is rounded before multiplying", func(t *testing.T) {
		quote := calc.Calculate(pricing.Input{
			Lines: []pricing.Line{{TierID: "ga", Quantity: 3, UnitPrice: money("33.333")}},
		})

		assertMoney(t, "99.99", quote.Subtotal)
	})

	t.Run("Promoter then fixed promo", func(t *testing.T) {
		quote := calc.Calculate(pricing.Input{
			Paid:  true,
			Lines: []pricing.Line{{TierID: "ga", Quantity: 2, UnitPrice: money("100")}},
			Promoter: &model.PromoterLink{
				Code:     "DJ",
				Discount: model.Discount{Type: model.DiscountPercent, Value: money("10")},
				Active:   true,
			},
			Promo: &model.PromoCode{
				ID:       "promo-1",
				Discount: model.Discount{Type: model.DiscountFixed, Value: money("50")},
				Active:   true,
			},
		})

		assertMoney(t, "20", quote.PromoterDiscount)
		assertMoney(t, "50", quote.PromoDiscount)
		assertMoney(t, "130", quote.DiscountedSubtotal)
		assertMoney(t, "6.50", quote.PlatformFee)
		assertMoney(t, "2.60", quote.PaymentFee)
		assertMoney(t, "1.64", quote.Tax)
		assertMoney(t, "140.74", quote.Total)
		assert.Equal(t, "promo-1", quote.PromoCodeID)
		assert.Equal(t, "DJ", quote.PromoterCode)
	})

	t.Run("Promoter honours tier overrides and exclusions", func(t *testing.T) {
		quote := calc.Calculate(pricing.Input{
			Lines: []pricing.Line{
				{TierID: "ga", Quantity: 1, UnitPrice: money("100")},
				{TierID: "vip", Quantity: 3, UnitPrice: money("50")},
				{TierID: "table", Quantity: 1, UnitPrice: money("500")},
			},
			Promoter: &model.PromoterLink{
				Code:            "DJ",
				Discount:        model.Discount{Type: model.DiscountPercent, Value: money("10")},
				TierOverrides:   map[string]model.Discount{"vip": {Type: model.DiscountFixed, Value: money("20")}},
				ExcludedTierIDs: []string{"table"},
			},
		})

		require.Len(t, quote.Lines, 3)
		assertMoney(t, "10", quote.Lines[0].PromoterDiscount)
		assertMoney(t, "60", quote.Lines[1].PromoterDiscount)
		assertMoney(t, "0", quote.Lines[2].PromoterDiscount)
		assertMoney(t, "70", quote.PromoterDiscount)
	})

	t.Run("Fixed promo is spread over eligible lines and capped", func(t *testing.T) {
		quote := calc.Calculate(pricing.Input{
			Lines: []pricing.Line{
				{TierID: "a", Quantity: 1, UnitPrice: money("50")},
				{TierID: "b", Quantity: 1, UnitPrice: money("100")},
				{TierID: "c", Quantity: 1, UnitPrice: money("100")},
			},
			Promo: &model.PromoCode{
				ID:              "promo",
				Discount:        model.Discount{Type: model.DiscountFixed, Value: money("500")},
				EligibleTierIDs: []string{"a", "b"},
			},
		})

		assertMoney(t, "50", quote.Lines[0].PromoDiscount)
		assertMoney(t, "100", quote.Lines[1].PromoDiscount)
		assertMoney(t, "0", quote.Lines[2].PromoDiscount)
		assertMoney(t, "150", quote.PromoDiscount)
		assertMoney(t, "100", quote.Total)
	})

	t.Run("Full discount is free and skips fees", func(t *testing.T) {
		quote := calc.Calculate(pricing.Input{
			Paid:  true,
			Lines: []pricing.Line{{TierID: "ga", Quantity: 2, UnitPrice: money("100")}},
			Promo: &model.PromoCode{
				ID:       "comp",
				Discount: model.Discount{Type: model.DiscountPercent, Value: money("100")},
			},
		})

		assertMoney(t, "0", quote.DiscountedSubtotal)
		assertMoney(t, "0", quote.PlatformFee)
		assertMoney(t, "0", quote.Tax)
		assertMoney(t, "0", quote.Total)
		assert.True(t, quote.IsFree)
	})

	t.Run("RSVP line skips fees", func(t *testing.T) {
		quote := calc.Calculate(pricing.Input{
			Paid:  false,
			Lines: []pricing.Line{{TierID: "rsvp", Quantity: 1, UnitPrice: decimal.Zero}},
		})

		assert.True(t, quote.IsFree)
		assertMoney(t, "0", quote.PlatformFee)
	})

	t.Run("Promo error is reported without aborting", func(t *testing.T) {
		quote := calc.Calculate(pricing.Input{
			Paid:       true,
			Lines:      []pricing.Line{{TierID: "ga", Quantity: 1, UnitPrice: money("100")}},
			PromoError: "promo code not found",
		})

		assert.Equal(t, "promo code not found", quote.PromoCodeError)
		assertMoney(t, "100", quote.DiscountedSubtotal)
	})
}
