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

type ShareRepository interface {
	FindByID(ctx context.Context, id string) (*model.ShareBundle, error)
	FindByToken(ctx context.Context, token string) (*model.ShareBundle, error)
	FindByOrderTier(ctx context.Context, orderID, tierID string) (*model.ShareBundle, error)
	ListByOrder(ctx context.Context, orderID string) ([]*model.ShareBundle, error)

	// Transaction methods
	// Create returns false if a bundle for the same order line already exists.
	Create(ctx context.Context, bundle *model.ShareBundle) (bool, error)
	FindByIDWithLock(ctx context.Context, id string) (*model.ShareBundle, error)
	FindByTokenWithLock(ctx context.Context, token string) (*model.ShareBundle, error)
	Update(ctx context.Context, bundle *model.ShareBundle) error
}

type ShareRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewShareRepository(pool *pgxpool.Pool) ShareRepository {
	return &ShareRepositoryImpl{
		pool: pool,
	}
}

const bundleColumns = `
	id, order_id, event_id, tier_id, owner_id, total_slots, remaining_slots, mode, token,
	slots, group_payload, scan_credits_remaining, deferred_inventory, is_couple,
	expires_at, created_at, updated_at`

func scanBundle(row pgx.Row) (*model.ShareBundle, error) {
	var (
		bundle model.ShareBundle
		slots  []byte
	)
	err := row.Scan(
		&bundle.ID,
		&bundle.OrderID,
		&bundle.EventID,
		&bundle.TierID,
		&bundle.OwnerID,
		&bundle.TotalSlots,
		&bundle.RemainingSlots,
		&bundle.Mode,
		&bundle.Token,
		&slots,
		&bundle.GroupPayload,
		&bundle.ScanCreditsRemaining,
		&bundle.DeferredInventory,
		&bundle.IsCouple,
		&bundle.ExpiresAt,
		&bundle.CreatedAt,
		&bundle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(slots, &bundle.Slots); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	return &bundle, nil
}

func (r *ShareRepositoryImpl) findOne(ctx context.Context, where string, lock bool, args ...any) (*model.ShareBundle, error) {
	query := `SELECT ` + bundleColumns + ` FROM share_bundles WHERE ` + where
	if lock {
		query += ` FOR UPDATE`
	}

	bundle, err := scanBundle(database.Conn(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBundleNotFound
		}
		return nil, err
	}
	return bundle, nil
}

func (r *ShareRepositoryImpl) FindByID(ctx context.Context, id string) (*model.ShareBundle, error) {
	return r.findOne(ctx, "id = $1", false, id)
}

func (r *ShareRepositoryImpl) FindByIDWithLock(ctx context.Context, id string) (*model.ShareBundle, error) {
	return r.findOne(ctx, "id = $1", true, id)
}

func (r *ShareRepositoryImpl) FindByToken(ctx context.Context, token string) (*model.ShareBundle, error) {
	return r.findOne(ctx, "token = $1", false, token)
}

func (r *ShareRepositoryImpl) FindByTokenWithLock(ctx context.Context, token string) (*model.ShareBundle, error) {
	return r.findOne(ctx, "token = $1", true, token)
}

func (r *ShareRepositoryImpl) FindByOrderTier(ctx context.Context, orderID, tierID string) (*model.ShareBundle, error) {
	return r.findOne(ctx, "order_id = $1 AND tier_id = $2", false, orderID, tierID)
}

func (r *ShareRepositoryImpl) ListByOrder(ctx context.Context, orderID string) ([]*model.ShareBundle, error) {
	query := `SELECT ` + bundleColumns + ` FROM share_bundles WHERE order_id = $1 ORDER BY created_at`

	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bundles []*model.ShareBundle
	for rows.Next() {
		bundle, err := scanBundle(rows)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}

	return bundles, rows.Err()
}

func (r *ShareRepositoryImpl) Create(ctx context.Context, bundle *model.ShareBundle) (bool, error) {
	slots, err := json.Marshal(bundle.Slots)
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO share_bundles (` + bundleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (order_id, tier_id) DO NOTHING
	`
	result, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		bundle.ID, bundle.OrderID, bundle.EventID, bundle.TierID, bundle.OwnerID,
		bundle.TotalSlots, bundle.RemainingSlots, bundle.Mode, bundle.Token, slots,
		bundle.GroupPayload, bundle.ScanCreditsRemaining, bundle.DeferredInventory,
		bundle.IsCouple, bundle.ExpiresAt, bundle.CreatedAt, bundle.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create share bundle: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

// Update writes the mutable parts of a bundle; total_slots is never rewritten.
func (r *ShareRepositoryImpl) Update(ctx context.Context, bundle *model.ShareBundle) error {
	slots, err := json.Marshal(bundle.Slots)
	if err != nil {
		return err
	}

	bundle.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE share_bundles
		SET remaining_slots = $1, slots = $2, scan_credits_remaining = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		bundle.RemainingSlots, slots, bundle.ScanCreditsRemaining, bundle.UpdatedAt, bundle.ID)
	if err != nil {
		return fmt.Errorf("failed to update share bundle: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrBundleNotFound
	}
	return nil
}
