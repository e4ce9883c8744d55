package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusRefunded       OrderStatus = "refunded"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPendingPayment, OrderStatusConfirmed, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo checks the allowed status transitions.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPendingPayment: {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed:      {OrderStatusCancelled, OrderStatusRefunded},
		OrderStatusCancelled:      {},
		OrderStatusRefunded:       {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// OrderKind is the settlement path an order took.
type OrderKind string

const (
	OrderKindRSVP        OrderKind = "rsvp"
	OrderKindPaidZero    OrderKind = "paid_zero"
	OrderKindPaidSettled OrderKind = "paid_settled"
)

// Bucket is the physical collection an order kind lives in.
type Bucket string

const (
	BucketPaid Bucket = "orders"
	BucketRSVP Bucket = "rsvp_orders"
)

func (k OrderKind) Bucket() Bucket {
	if k == OrderKindRSVP {
		return BucketRSVP
	}
	return BucketPaid
}

type PaymentMethod string

const (
	PaymentMethodNone    PaymentMethod = "none"
	PaymentMethodFree    PaymentMethod = "free"
	PaymentMethodGateway PaymentMethod = "gateway"
)

type OrderLine struct {
	TierID    string          `json:"tier_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	// Charged is the quantity taken from tier inventory when the order confirmed.
	Charged int `json:"charged"`
}

type Order struct {
	ID               string          `json:"id" db:"id"`
	EventID          string          `json:"event_id" db:"event_id"`
	Kind             OrderKind       `json:"kind" db:"kind"`
	Buyer            Buyer           `json:"buyer" db:"buyer"`
	Lines            []OrderLine     `json:"lines" db:"lines"`
	Subtotal         decimal.Decimal `json:"subtotal" db:"subtotal"`
	PromoterDiscount decimal.Decimal `json:"promoter_discount" db:"promoter_discount"`
	PromoDiscount    decimal.Decimal `json:"promo_discount" db:"promo_discount"`
	PlatformFee      decimal.Decimal `json:"platform_fee" db:"platform_fee"`
	PaymentFee       decimal.Decimal `json:"payment_fee" db:"payment_fee"`
	Tax              decimal.Decimal `json:"tax" db:"tax"`
	TotalAmount      decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status           OrderStatus     `json:"status" db:"status"`
	PaymentMethod    PaymentMethod   `json:"payment_method" db:"payment_method"`
	GatewayOrderID   string          `json:"gateway_order_id,omitempty" db:"gateway_order_id"`
	PaymentID        string          `json:"payment_id,omitempty" db:"payment_id"`
	ReservationID    string          `json:"reservation_id" db:"reservation_id"`
	PromoterCode     string          `json:"promoter_code,omitempty" db:"promoter_code"`
	PromoCodeID      string          `json:"promo_code_id,omitempty" db:"promo_code_id"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
	ConfirmedAt      *time.Time      `json:"confirmed_at,omitempty" db:"confirmed_at"`
}

func (o *Order) IsRSVP() bool {
	return o.Kind == OrderKindRSVP
}

// IsRedeemable is true only for confirmed orders.
func (o *Order) IsRedeemable() bool {
	return o.Status == OrderStatusConfirmed
}

func (o *Order) Line(tierID string) (*OrderLine, bool) {
	for i := range o.Lines {
		if o.Lines[i].TierID == tierID {
			return &o.Lines[i], true
		}
	}
	return nil, false
}

// OrderIDForReservation derives the deterministic order id for a reservation.
func OrderIDForReservation(kind OrderKind, reservationID string) string {
	if kind == OrderKindRSVP {
		return "rsvp_" + reservationID
	}
	return "ord_" + reservationID
}

type CheckoutRequest struct {
	ReservationID string `json:"reservation_id" binding:"required"`
	Buyer         Buyer  `json:"buyer"`
	PromoCode     string `json:"promo_code"`
	PromoterCode  string `json:"promoter_code"`
}

// GatewayInitiation is what the client needs to open the payment sheet.
type GatewayInitiation struct {
	GatewayOrderID string          `json:"gateway_order_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
}

// Entitlement is one signed proof of entry.
type Entitlement struct {
	TierID       string `json:"tier_id"`
	Unit         int    `json:"unit,omitempty"`
	SlotIndex    int    `json:"slot_index,omitempty"`
	AssignmentID string `json:"assignment_id,omitempty"`
	Payload      string `json:"payload"`
}

type CheckoutResult struct {
	Order        *Order             `json:"order"`
	Gateway      *GatewayInitiation `json:"gateway,omitempty"`
	Entitlements []Entitlement      `json:"entitlements,omitempty"`
	// Replayed is true when an earlier attempt for the same reservation already produced the order.
	Replayed bool `json:"replayed"`
}

type ConfirmPaymentRequest struct {
	OrderID        string `json:"-"`
	GatewayOrderID string `json:"gateway_order_id" binding:"required"`
	PaymentID      string `json:"payment_id" binding:"required"`
	Signature      string `json:"signature" binding:"required"`
}

// OrderConfirmedEvent is published after an order reaches confirmed.
type OrderConfirmedEvent struct {
	OrderID     string          `json:"order_id"`
	EventID     string          `json:"event_id"`
	Kind        OrderKind       `json:"kind"`
	BuyerID     string          `json:"buyer_id"`
	BuyerEmail  string          `json:"buyer_email"`
	Total       decimal.Decimal `json:"total"`
	Tickets     int             `json:"tickets"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
}
