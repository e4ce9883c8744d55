package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

// EventRepository is the read side of the catalog plus seeding.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id string) (*model.Event, error)
}

type EventRepositoryImpl struct {
	pool  *pgxpool.Pool
	tiers TierRepository
}

func NewEventRepository(pool *pgxpool.Pool, tiers TierRepository) EventRepository {
	return &EventRepositoryImpl{
		pool:  pool,
		tiers: tiers,
	}
}

// Create upserts the event and its tiers. Existing tiers keep their remaining count.
func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	now := time.Now().UTC()
	conn := database.Conn(ctx, r.pool)

	query := `
		INSERT INTO events (id, name, kind, starts_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, kind = EXCLUDED.kind, starts_at = EXCLUDED.starts_at, updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at
	`
	if err := conn.QueryRow(ctx, query, event.ID, event.Name, event.Kind, event.StartsAt, now).
		Scan(&event.CreatedAt, &event.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	tierQuery := `
		INSERT INTO ticket_tiers (
			id, event_id, name, base_price, price_windows, quantity, remaining,
			min_per_order, max_per_order, sales_start, sales_end,
			gender_requirement, is_couple, deferred_inventory, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, base_price = EXCLUDED.base_price, price_windows = EXCLUDED.price_windows,
			min_per_order = EXCLUDED.min_per_order, max_per_order = EXCLUDED.max_per_order,
			sales_start = EXCLUDED.sales_start, sales_end = EXCLUDED.sales_end,
			gender_requirement = EXCLUDED.gender_requirement, is_couple = EXCLUDED.is_couple,
			deferred_inventory = EXCLUDED.deferred_inventory, position = EXCLUDED.position,
			updated_at = EXCLUDED.updated_at
	`
	for i := range event.Tiers {
		tier := &event.Tiers[i]
		tier.EventID = event.ID
		if tier.GenderRequirement == "" {
			tier.GenderRequirement = model.GenderAny
		}
		windows, err := json.Marshal(tier.PriceWindows)
		if err != nil {
			return nil, err
		}
		remaining := tier.Remaining
		if remaining == 0 {
			remaining = tier.Quantity
		}
		if _, err := conn.Exec(ctx, tierQuery,
			tier.ID, tier.EventID, tier.Name, tier.BasePrice, windows, tier.Quantity, remaining,
			tier.MinPerOrder, tier.MaxPerOrder, tier.SalesStart, tier.SalesEnd,
			string(tier.GenderRequirement), tier.IsCouple, tier.DeferredInventory, i, now,
		); err != nil {
			return nil, fmt.Errorf("failed to create tier %s: %w", tier.ID, err)
		}
	}

	return r.FindByID(ctx, event.ID)
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id string) (*model.Event, error) {
	query := `
		SELECT id, name, kind, starts_at, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event model.Event
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.Kind,
		&event.StartsAt,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	tiers, err := r.tiers.ListByEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Tiers = tiers

	return &event, nil
}
