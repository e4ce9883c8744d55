package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/qr"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
)

// Seed is a catalog fixture: events with their tiers, promo codes, promoter links and user profiles.
// The memory driver starts empty, so this is how a dev server gets something to sell.
type Seed struct {
	Events        []SeedEvent    `yaml:"events"`
	PromoCodes    []SeedPromo    `yaml:"promo_codes"`
	PromoterLinks []SeedPromoter `yaml:"promoter_links"`
	Users         []SeedUser     `yaml:"users"`
}

type SeedEvent struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Kind     string     `yaml:"kind"`
	StartsAt time.Time  `yaml:"starts_at"`
	Tiers    []SeedTier `yaml:"tiers"`
}

type SeedTier struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Quantity    int    `yaml:"quantity"`
	MinPerOrder int    `yaml:"min_per_order"`
	MaxPerOrder int    `yaml:"max_per_order"`
	Gender      string `yaml:"gender"`
	Couple      bool   `yaml:"couple"`
	Deferred    bool   `yaml:"deferred"`
}

type SeedDiscount struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

type SeedPromo struct {
	ID             string       `yaml:"id"`
	Code           string       `yaml:"code"`
	EventID        string       `yaml:"event_id"`
	Discount       SeedDiscount `yaml:"discount"`
	MaxRedemptions int          `yaml:"max_redemptions"`
	MaxPerUser     int          `yaml:"max_per_user"`
	Tiers          []string     `yaml:"tiers"`
}

type SeedPromoter struct {
	Code          string       `yaml:"code"`
	EventID       string       `yaml:"event_id"`
	Discount      SeedDiscount `yaml:"discount"`
	ExcludedTiers []string     `yaml:"excluded_tiers"`
}

type SeedUser struct {
	ID     string `yaml:"id"`
	Email  string `yaml:"email"`
	Name   string `yaml:"name"`
	Gender string `yaml:"gender"`
}

func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

func (s *Seed) events() ([]*model.Event, error) {
	events := make([]*model.Event, 0, len(s.Events))
	for _, e := range s.Events {
		kind := model.EventKind(e.Kind)
		if kind != model.EventKindRSVP && kind != model.EventKindPaid {
			return nil, fmt.Errorf("event %s: unknown kind %q", e.ID, e.Kind)
		}

		if err := qr.CheckID(e.ID); err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID, err)
		}

		event := &model.Event{ID: e.ID, Name: e.Name, Kind: kind, StartsAt: e.StartsAt.UTC()}
		for _, t := range e.Tiers {
			if err := qr.CheckID(t.ID); err != nil {
				return nil, fmt.Errorf("tier %s: %w", t.ID, err)
			}
			price := decimal.Zero
			if t.Price != "" {
				p, err := decimal.NewFromString(t.Price)
				if err != nil {
					return nil, fmt.Errorf("tier %s: price: %w", t.ID, err)
				}
				price = p
			}
			gender := model.GenderRequirement(t.Gender)
			if gender == "" {
				gender = model.GenderAny
			}
			event.Tiers = append(event.Tiers, model.TicketTier{
				ID:                t.ID,
				EventID:           e.ID,
				Name:              t.Name,
				BasePrice:         price,
				Quantity:          t.Quantity,
				MinPerOrder:       t.MinPerOrder,
				MaxPerOrder:       t.MaxPerOrder,
				GenderRequirement: gender,
				IsCouple:          t.Couple,
				DeferredInventory: t.Deferred,
			})
		}
		events = append(events, event)
	}
	return events, nil
}

func (d SeedDiscount) toModel() (model.Discount, error) {
	value, err := decimal.NewFromString(d.Value)
	if err != nil {
		return model.Discount{}, fmt.Errorf("discount value: %w", err)
	}
	kind := model.DiscountType(d.Type)
	if kind != model.DiscountPercent && kind != model.DiscountFixed {
		return model.Discount{}, fmt.Errorf("unknown discount type %q", d.Type)
	}
	return model.Discount{Type: kind, Value: value}, nil
}

// Apply writes the fixture in one transaction.
func (s *Seed) Apply(ctx context.Context, tx database.TxManager, repos repository.Repositories) error {
	events, err := s.events()
	if err != nil {
		return err
	}

	return tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, event := range events {
			if _, err := repos.Events.Create(ctx, event); err != nil {
				return fmt.Errorf("event %s: %w", event.ID, err)
			}
		}
		for _, p := range s.PromoCodes {
			discount, err := p.Discount.toModel()
			if err != nil {
				return fmt.Errorf("promo %s: %w", p.Code, err)
			}
			if err := repos.Promos.SavePromoCode(ctx, &model.PromoCode{
				ID:              p.ID,
				Code:            p.Code,
				EventID:         p.EventID,
				Discount:        discount,
				MaxRedemptions:  p.MaxRedemptions,
				MaxPerUser:      p.MaxPerUser,
				EligibleTierIDs: p.Tiers,
				Active:          true,
			}); err != nil {
				return fmt.Errorf("promo %s: %w", p.Code, err)
			}
		}
		for _, l := range s.PromoterLinks {
			discount, err := l.Discount.toModel()
			if err != nil {
				return fmt.Errorf("promoter %s: %w", l.Code, err)
			}
			if err := repos.Promos.SavePromoterLink(ctx, &model.PromoterLink{
				Code:            l.Code,
				EventID:         l.EventID,
				Discount:        discount,
				ExcludedTierIDs: l.ExcludedTiers,
				Active:          true,
			}); err != nil {
				return fmt.Errorf("promoter %s: %w", l.Code, err)
			}
		}
		for _, u := range s.Users {
			if err := repos.Users.Upsert(ctx, &model.Profile{
				UserID: u.ID,
				Email:  u.Email,
				Name:   u.Name,
				Gender: model.Gender(u.Gender),
			}); err != nil {
				return fmt.Errorf("user %s: %w", u.ID, err)
			}
		}
		return nil
	})
}

// ApplySeed loads the fixture at path into the app's store.
func (a *App) ApplySeed(ctx context.Context, path string) error {
	seed, err := LoadSeedFile(path)
	if err != nil {
		return err
	}
	return seed.Apply(ctx, a.Tx, a.Repos)
}
