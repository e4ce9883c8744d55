package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
)

var hundred = decimal.NewFromInt(100)

type Line struct {
	TierID        string
	Name          string
	Quantity      int
	UnitPrice     decimal.Decimal
	ScheduleLabel string
}

// Input is a fully validated pricing request. Promoter and Promo are nil when
// absent or rejected; PromoError carries the reason a supplied promo was dropped.
type Input struct {
	EventID    string
	Paid       bool
	Lines      []Line
	Promoter   *model.PromoterLink
	Promo      *model.PromoCode
	PromoError string
}

type Calculator struct {
	fees config.FeePolicy
}

func NewCalculator(fees config.FeePolicy) *Calculator {
	return &Calculator{fees: fees}
}

// Calculate rounds every accumulated amount to two places as it goes.
func (c *Calculator) Calculate(in Input) *model.Quote {
	quote := &model.Quote{
		EventID:          in.EventID,
		Lines:            make([]model.QuoteLine, 0, len(in.Lines)),
		Subtotal:         decimal.Zero,
		PromoterDiscount: decimal.Zero,
		PromoDiscount:    decimal.Zero,
		PlatformFee:      decimal.Zero,
		PaymentFee:       decimal.Zero,
		Tax:              decimal.Zero,
		PromoCodeError:   in.PromoError,
	}

	for _, line := range in.Lines {
		unit := Round(line.UnitPrice)
		subtotal := Round(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
		quote.Lines = append(quote.Lines, model.QuoteLine{
			TierID:           line.TierID,
			Name:             line.Name,
			Quantity:         line.Quantity,
			UnitPrice:        unit,
			ScheduleLabel:    line.ScheduleLabel,
			Subtotal:         subtotal,
			PromoterDiscount: decimal.Zero,
			PromoDiscount:    decimal.Zero,
		})
		quote.Subtotal = Round(quote.Subtotal.Add(subtotal))
	}

	if in.Promoter != nil {
		quote.PromoterCode = in.Promoter.Code
		for i := range quote.Lines {
			line := &quote.Lines[i]
			if in.Promoter.Excludes(line.TierID) {
				continue
			}
			d := lineDiscount(in.Promoter.DiscountFor(line.TierID), line.Subtotal, line.Quantity)
			line.PromoterDiscount = d
			quote.PromoterDiscount = Round(quote.PromoterDiscount.Add(d))
		}
	}

	if in.Promo != nil {
		quote.PromoCodeID = in.Promo.ID
		c.applyPromo(quote, in.Promo)
	}

	discounts := Round(quote.PromoterDiscount.Add(quote.PromoDiscount))
	quote.DiscountedSubtotal = Round(quote.Subtotal.Sub(discounts))
	if quote.DiscountedSubtotal.IsNegative() {
		quote.DiscountedSubtotal = decimal.Zero
	}

	if in.Paid && quote.DiscountedSubtotal.IsPositive() {
		quote.PlatformFee = Round(quote.DiscountedSubtotal.Mul(c.fees.PlatformFeePercent).Div(hundred))
		quote.PaymentFee = Round(quote.DiscountedSubtotal.Mul(c.fees.PaymentFeePercent).Div(hundred))
		feeSum := Round(quote.PlatformFee.Add(quote.PaymentFee))
		quote.Tax = Round(feeSum.Mul(c.fees.FeeTaxPercent).Div(hundred))
	}

	total := Round(quote.DiscountedSubtotal.Add(quote.PlatformFee))
	total = Round(total.Add(quote.PaymentFee))
	quote.Total = Round(total.Add(quote.Tax))
	quote.IsFree = quote.Total.IsZero()

	return quote
}

// applyPromo discounts eligible lines on what is left after the promoter discount.
// A fixed promo is one order-level amount spent across eligible lines in order.
func (c *Calculator) applyPromo(quote *model.Quote, promo *model.PromoCode) {
	remaining := Round(promo.Discount.Value)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	for i := range quote.Lines {
		line := &quote.Lines[i]
		if !promo.AppliesTo(line.TierID) {
			continue
		}
		base := Round(line.Subtotal.Sub(line.PromoterDiscount))
		if !base.IsPositive() {
			continue
		}

		var d decimal.Decimal
		switch promo.Discount.Type {
		case model.DiscountPercent:
			d = Round(base.Mul(clampPercent(promo.Discount.Value)).Div(hundred))
		default:
			d = decimal.Min(remaining, base)
			remaining = Round(remaining.Sub(d))
		}

		line.PromoDiscount = d
		quote.PromoDiscount = Round(quote.PromoDiscount.Add(d))
	}
}

// lineDiscount applies a promoter discount to one line: percent of the line
// subtotal, or a fixed amount per ticket, never more than the subtotal.
func lineDiscount(discount model.Discount, subtotal decimal.Decimal, quantity int) decimal.Decimal {
	var d decimal.Decimal
	switch discount.Type {
	case model.DiscountPercent:
		d = Round(subtotal.Mul(clampPercent(discount.Value)).Div(hundred))
	default:
		d = Round(discount.Value.Mul(decimal.NewFromInt(int64(quantity))))
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(d, subtotal)
}

func clampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(p, hundred)
}
