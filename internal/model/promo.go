package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// PromoterLink is a referral code; its discount applies per ticket, optionally
// overridden per tier, and never to opted-out tiers.
type PromoterLink struct {
	Code            string              `json:"code" db:"code"`
	EventID         string              `json:"event_id" db:"event_id"`
	Discount        Discount            `json:"discount" db:"discount"`
	TierOverrides   map[string]Discount `json:"tier_overrides,omitempty" db:"tier_overrides"`
	ExcludedTierIDs []string            `json:"excluded_tier_ids,omitempty" db:"excluded_tier_ids"`
	Active          bool                `json:"active" db:"active"`
}

func (p *PromoterLink) Excludes(tierID string) bool {
	for _, id := range p.ExcludedTierIDs {
		if id == tierID {
			return true
		}
	}
	return false
}

func (p *PromoterLink) DiscountFor(tierID string) Discount {
	if d, ok := p.TierOverrides[tierID]; ok {
		return d
	}
	return p.Discount
}

// PromoCode is an order-level discount code.
type PromoCode struct {
	ID              string     `json:"id" db:"id"`
	Code            string     `json:"code" db:"code"`
	EventID         string     `json:"event_id" db:"event_id"`
	Discount        Discount   `json:"discount" db:"discount"`
	StartsAt        *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt          *time.Time `json:"ends_at,omitempty" db:"ends_at"`
	MaxRedemptions  int        `json:"max_redemptions" db:"max_redemptions"`
	Redemptions     int        `json:"redemptions" db:"redemptions"`
	MaxPerUser      int        `json:"max_per_user" db:"max_per_user"`
	EligibleTierIDs []string   `json:"eligible_tier_ids,omitempty" db:"eligible_tier_ids"`
	Active          bool       `json:"active" db:"active"`
}

// AppliesTo reports tier eligibility; an empty list means every tier.
func (p *PromoCode) AppliesTo(tierID string) bool {
	if len(p.EligibleTierIDs) == 0 {
		return true
	}
	for _, id := range p.EligibleTierIDs {
		if id == tierID {
			return true
		}
	}
	return false
}

func (p *PromoCode) InWindow(at time.Time) bool {
	if p.StartsAt != nil && at.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && at.After(*p.EndsAt) {
		return false
	}
	return true
}

type PricingOptions struct {
	PromoCode    string `json:"promo_code"`
	PromoterCode string `json:"promoter_code"`
	BuyerID      string `json:"buyer_id"`
}

type QuoteRequest struct {
	EventID string        `json:"event_id" binding:"required"`
	Items   []ItemRequest `json:"items" binding:"required,min=1"`
	PricingOptions
}

// QuoteLine is the per-line breakdown of a quote.
type QuoteLine struct {
	TierID           string          `json:"tier_id"`
	Name             string          `json:"name"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ScheduleLabel    string          `json:"schedule_label,omitempty"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	PromoterDiscount decimal.Decimal `json:"promoter_discount"`
	PromoDiscount    decimal.Decimal `json:"promo_discount"`
}

type Quote struct {
	EventID            string          `json:"event_id"`
	Lines              []QuoteLine     `json:"lines"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	PromoterDiscount   decimal.Decimal `json:"promoter_discount"`
	PromoDiscount      decimal.Decimal `json:"promo_discount"`
	DiscountedSubtotal decimal.Decimal `json:"discounted_subtotal"`
	PlatformFee        decimal.Decimal `json:"platform_fee"`
	PaymentFee         decimal.Decimal `json:"payment_fee"`
	Tax                decimal.Decimal `json:"tax"`
	Total              decimal.Decimal `json:"total"`
	IsFree             bool            `json:"is_free"`
	PromoCodeID        string          `json:"promo_code_id,omitempty"`
	PromoterCode       string          `json:"promoter_code,omitempty"`
	// PromoCodeError explains why a supplied promo code was ignored.
	PromoCodeError string `json:"promo_code_error,omitempty"`
}
