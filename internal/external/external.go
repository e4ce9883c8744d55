// Package external holds the boundary interfaces this engine consumes and
// their adapters.
package external

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
)

type GatewayOrder struct {
	ID       string
	Amount   decimal.Decimal
	Currency string
}

// PaymentVerification is the gateway's verdict on a client-reported payment.
type PaymentVerification struct {
	Verified bool
	Amount   decimal.Decimal
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, orderID string, amount decimal.Decimal) (*GatewayOrder, error)
	VerifyPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) (*PaymentVerification, error)
}

// ProfileDirectory resolves identity attributes used for gating.
type ProfileDirectory interface {
	Lookup(ctx context.Context, userID string) (*model.Profile, error)
}

// Notifier dispatches fire-and-forget messages after an order confirms.
type Notifier interface {
	NotifyOrderConfirmed(ctx context.Context, event model.OrderConfirmedEvent) error
}
