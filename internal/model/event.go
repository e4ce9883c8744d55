package model

import (
	"time"
)

type EventKind string

const (
	EventKindRSVP EventKind = "rsvp"
	EventKindPaid EventKind = "paid"
)

type Event struct {
	ID        string       `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Kind      EventKind    `json:"kind" db:"kind"`
	StartsAt  time.Time    `json:"starts_at" db:"starts_at"`
	Tiers     []TicketTier `json:"tiers" db:"-"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}

func (e *Event) IsRSVP() bool {
	return e.Kind == EventKindRSVP
}

// Tier finds a tier by id.
func (e *Event) Tier(tierID string) (*TicketTier, bool) {
	for i := range e.Tiers {
		if e.Tiers[i].ID == tierID {
			return &e.Tiers[i], true
		}
	}
	return nil, false
}
