package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenderRequirement gates who may hold or redeem a unit of a tier or slot.
type GenderRequirement string

const (
	GenderAny    GenderRequirement = "any"
	GenderMale   GenderRequirement = "male"
	GenderFemale GenderRequirement = "female"
)

// Gender is a profile attribute; empty means unknown.
type Gender string

const (
	GenderUnknown  Gender = ""
	GenderIsMale   Gender = "male"
	GenderIsFemale Gender = "female"
)

func ParseGenderRequirement(raw string) GenderRequirement {
	switch GenderRequirement(raw) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderAny
	}
}

// Allows reports whether a person of the given gender satisfies the requirement.
// An unknown gender only satisfies GenderAny.
func (r GenderRequirement) Allows(g Gender) bool {
	switch r {
	case GenderMale:
		return g == GenderIsMale
	case GenderFemale:
		return g == GenderIsFemale
	default:
		return true
	}
}

// PriceWindow is a scheduled price. Windows are evaluated in declaration order;
// keeping them non-overlapping is the tier author's job.
type PriceWindow struct {
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Price decimal.Decimal `json:"price"`
	Label string          `json:"label"`
}

func (w PriceWindow) Contains(at time.Time) bool {
	return !at.Before(w.Start) && !at.After(w.End)
}

// TicketTier is a purchasable admission category. Remaining is written only by
// order confirmation, cancellation and deferred-inventory claims.
type TicketTier struct {
	ID                string            `json:"id" db:"id"`
	EventID           string            `json:"event_id" db:"event_id"`
	Name              string            `json:"name" db:"name"`
	BasePrice         decimal.Decimal   `json:"base_price" db:"base_price"`
	PriceWindows      []PriceWindow     `json:"price_windows,omitempty" db:"price_windows"`
	Quantity          int               `json:"quantity" db:"quantity"`
	Remaining         int               `json:"remaining" db:"remaining"`
	MinPerOrder       int               `json:"min_per_order" db:"min_per_order"`
	MaxPerOrder       int               `json:"max_per_order" db:"max_per_order"`
	SalesStart        *time.Time        `json:"sales_start,omitempty" db:"sales_start"`
	SalesEnd          *time.Time        `json:"sales_end,omitempty" db:"sales_end"`
	GenderRequirement GenderRequirement `json:"gender_requirement" db:"gender_requirement"`
	IsCouple          bool              `json:"is_couple" db:"is_couple"`
	// DeferredInventory charges shareable units against Remaining only when they are claimed.
	DeferredInventory bool      `json:"deferred_inventory" db:"deferred_inventory"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// SalesOpen reports whether the sales window contains at.
func (t *TicketTier) SalesOpen(at time.Time) bool {
	if t.SalesStart != nil && at.Before(*t.SalesStart) {
		return false
	}
	if t.SalesEnd != nil && at.After(*t.SalesEnd) {
		return false
	}
	return true
}

// UsesDeferredInventory is false for couple tiers whatever the flag says.
func (t *TicketTier) UsesDeferredInventory() bool {
	return t.DeferredInventory && !t.IsCouple
}

// SlotsPerTicket is the number of admissions a single purchased unit grants.
func (t *TicketTier) SlotsPerTicket() int {
	if t.IsCouple {
		return 2
	}
	return 1
}

// ConfirmationCharge is how many units of Remaining a line of qty consumes when its order confirms.
func (t *TicketTier) ConfirmationCharge(qty int) int {
	if t.UsesDeferredInventory() && qty > 0 {
		return 1
	}
	return qty
}

func (t *TicketTier) MaxAllowed() int {
	if t.MaxPerOrder <= 0 {
		return t.Quantity
	}
	return t.MaxPerOrder
}

func (t *TicketTier) MinAllowed() int {
	if t.MinPerOrder <= 0 {
		return 1
	}
	return t.MinPerOrder
}

// TierAvailability is an advisory snapshot; only the confirmation transaction is authoritative.
type TierAvailability struct {
	TierID    string `json:"tier_id"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
	Held      int    `json:"held"`
	Available int    `json:"available"`
}

// Profile is the identity collaborator's view of a person.
type Profile struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}
