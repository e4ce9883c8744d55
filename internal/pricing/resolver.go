// Package pricing resolves tier prices and computes order totals. It has no store access.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
)

type Resolution struct {
	UnitPrice     decimal.Decimal
	ScheduleLabel string
	IsScheduled   bool
}

// Resolve returns the price of the first window containing at, in declaration
// order, falling back to the base price. Overlapping windows are not rejected.
func Resolve(tier *model.TicketTier, at time.Time) Resolution {
	for _, window := range tier.PriceWindows {
		if window.Contains(at) {
			return Resolution{
				UnitPrice:     Round(window.Price),
				ScheduleLabel: window.Label,
				IsScheduled:   true,
			}
		}
	}
	return Resolution{UnitPrice: Round(tier.BasePrice)}
}

// Round rounds half away from zero to two places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
