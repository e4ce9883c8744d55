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

// TierRepository owns ticket_tiers. DecrementRemaining and IncrementRemaining are
// the only writers of remaining.
type TierRepository interface {
	FindByID(ctx context.Context, id string) (*model.TicketTier, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.TicketTier, error)

	// Transaction methods
	FindByIDWithLock(ctx context.Context, id string) (*model.TicketTier, error)
	DecrementRemaining(ctx context.Context, id string, quantity int) error
	IncrementRemaining(ctx context.Context, id string, quantity int) error
}

type TierRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTierRepository(pool *pgxpool.Pool) TierRepository {
	return &TierRepositoryImpl{
		pool: pool,
	}
}

const tierColumns = `
	id, event_id, name, base_price, price_windows, quantity, remaining,
	min_per_order, max_per_order, sales_start, sales_end,
	gender_requirement, is_couple, deferred_inventory, created_at, updated_at`

func scanTier(row pgx.Row) (*model.TicketTier, error) {
	var (
		tier    model.TicketTier
		windows []byte
		gender  string
	)
	err := row.Scan(
		&tier.ID,
		&tier.EventID,
		&tier.Name,
		&tier.BasePrice,
		&windows,
		&tier.Quantity,
		&tier.Remaining,
		&tier.MinPerOrder,
		&tier.MaxPerOrder,
		&tier.SalesStart,
		&tier.SalesEnd,
		&gender,
		&tier.IsCouple,
		&tier.DeferredInventory,
		&tier.CreatedAt,
		&tier.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(windows) > 0 {
		if err := json.Unmarshal(windows, &tier.PriceWindows); err != nil {
			return nil, fmt.Errorf("decode price windows: %w", err)
		}
	}
	tier.GenderRequirement = model.ParseGenderRequirement(gender)
	return &tier, nil
}

func (r *TierRepositoryImpl) FindByID(ctx context.Context, id string) (*model.TicketTier, error) {
	query := `SELECT ` + tierColumns + ` FROM ticket_tiers WHERE id = $1`

	tier, err := scanTier(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTierNotFound
		}
		return nil, err
	}
	return tier, nil
}

func (r *TierRepositoryImpl) FindByIDWithLock(ctx context.Context, id string) (*model.TicketTier, error) {
	query := `SELECT ` + tierColumns + ` FROM ticket_tiers WHERE id = $1 FOR UPDATE`

	tier, err := scanTier(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTierNotFound
		}
		return nil, err
	}
	return tier, nil
}

func (r *TierRepositoryImpl) ListByEvent(ctx context.Context, eventID string) ([]model.TicketTier, error) {
	query := `SELECT ` + tierColumns + ` FROM ticket_tiers WHERE event_id = $1 ORDER BY position, id`

	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []model.TicketTier
	for rows.Next() {
		tier, err := scanTier(rows)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, *tier)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tiers, nil
}

func (r *TierRepositoryImpl) DecrementRemaining(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	query := `
		UPDATE ticket_tiers
		SET remaining = remaining - $1, updated_at = $2
		WHERE id = $3 AND remaining >= $1
	`

	result, err := database.Conn(ctx, r.pool).Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInsufficientStock
	}

	return nil
}

// IncrementRemaining never raises remaining above quantity.
func (r *TierRepositoryImpl) IncrementRemaining(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	query := `
		UPDATE ticket_tiers
		SET remaining = LEAST(quantity, remaining + $1), updated_at = $2
		WHERE id = $3
	`

	result, err := database.Conn(ctx, r.pool).Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTierNotFound
	}

	return nil
}
