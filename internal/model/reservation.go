package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusReleased  ReservationStatus = "released"
	ReservationStatusExpired   ReservationStatus = "expired"
	ReservationStatusConverted ReservationStatus = "converted"
)

func (s ReservationStatus) IsTerminal() bool {
	return s != ReservationStatusActive
}

// ReservationItem freezes the unit price resolved when the hold was taken.
type ReservationItem struct {
	TierID        string          `json:"tier_id"`
	TierName      string          `json:"tier_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ScheduleLabel string          `json:"schedule_label,omitempty"`
}

type Reservation struct {
	ID              string            `json:"id" db:"id"`
	EventID         string            `json:"event_id" db:"event_id"`
	CustomerID      string            `json:"customer_id" db:"customer_id"`
	DeviceID        string            `json:"device_id" db:"device_id"`
	ExternalQueueID string            `json:"external_queue_id,omitempty" db:"external_queue_id"`
	Items           []ReservationItem `json:"items" db:"items"`
	Status          ReservationStatus `json:"status" db:"status"`
	OrderID         string            `json:"order_id,omitempty" db:"order_id"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	ExpiresAt       time.Time         `json:"expires_at" db:"expires_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// IsLive reports whether the reservation still holds inventory at the given instant.
func (r *Reservation) IsLive(at time.Time) bool {
	return r.Status == ReservationStatusActive && at.Before(r.ExpiresAt)
}

// HeldQuantity returns the quantity held against a tier.
func (r *Reservation) HeldQuantity(tierID string) int {
	total := 0
	for _, item := range r.Items {
		if item.TierID == tierID {
			total += item.Quantity
		}
	}
	return total
}

func (r *Reservation) TotalQuantity() int {
	total := 0
	for _, item := range r.Items {
		total += item.Quantity
	}
	return total
}

// ItemRequest is one requested line of a reservation or quote.
type ItemRequest struct {
	TierID   string `json:"tier_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// Buyer identifies who is purchasing; contact fields feed the RSVP one-per-person rule.
type Buyer struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	DeviceID string `json:"device_id,omitempty"`
}

type CreateReservationRequest struct {
	EventID        string        `json:"event_id" binding:"required"`
	Buyer          Buyer         `json:"buyer"`
	Items          []ItemRequest `json:"items" binding:"required,min=1"`
	IdempotencyKey string        `json:"idempotency_key"`
}
