package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

type PromoRepository interface {
	FindPromoCode(ctx context.Context, eventID, code string) (*model.PromoCode, error)
	FindPromoterLink(ctx context.Context, eventID, code string) (*model.PromoterLink, error)

	SavePromoCode(ctx context.Context, promo *model.PromoCode) error
	SavePromoterLink(ctx context.Context, link *model.PromoterLink) error

	// Transaction methods
	FindPromoCodeByIDWithLock(ctx context.Context, id string) (*model.PromoCode, error)
	// IncrementRedemptions returns ErrPromoCodeExhausted once max_redemptions is reached.
	IncrementRedemptions(ctx context.Context, promoCodeID string) error
}

type PromoRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPromoRepository(pool *pgxpool.Pool) PromoRepository {
	return &PromoRepositoryImpl{
		pool: pool,
	}
}

const promoColumns = `
	id, code, event_id, discount_type, discount_value, starts_at, ends_at,
	max_redemptions, redemptions, max_per_user, eligible_tier_ids, active`

func (r *PromoRepositoryImpl) FindPromoCode(ctx context.Context, eventID, code string) (*model.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE event_id = $1 AND upper(code) = $2`
	return scanPromo(database.Conn(ctx, r.pool).QueryRow(ctx, query, eventID, strings.ToUpper(code)))
}

func (r *PromoRepositoryImpl) FindPromoCodeByIDWithLock(ctx context.Context, id string) (*model.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE id = $1 FOR UPDATE`
	return scanPromo(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func scanPromo(row pgx.Row) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := row.Scan(
		&promo.ID,
		&promo.Code,
		&promo.EventID,
		&promo.Discount.Type,
		&promo.Discount.Value,
		&promo.StartsAt,
		&promo.EndsAt,
		&promo.MaxRedemptions,
		&promo.Redemptions,
		&promo.MaxPerUser,
		&promo.EligibleTierIDs,
		&promo.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPromoCodeNotFound
		}
		return nil, err
	}
	return &promo, nil
}

func (r *PromoRepositoryImpl) FindPromoterLink(ctx context.Context, eventID, code string) (*model.PromoterLink, error) {
	query := `
		SELECT code, event_id, discount_type, discount_value, tier_overrides, excluded_tier_ids, active
		FROM promoter_links
		WHERE event_id = $1 AND upper(code) = $2
	`

	var (
		link      model.PromoterLink
		overrides []byte
	)
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query, eventID, strings.ToUpper(code)).Scan(
		&link.Code,
		&link.EventID,
		&link.Discount.Type,
		&link.Discount.Value,
		&overrides,
		&link.ExcludedTierIDs,
		&link.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPromoCodeNotFound
		}
		return nil, err
	}

	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &link.TierOverrides); err != nil {
			return nil, fmt.Errorf("decode tier overrides: %w", err)
		}
	}

	return &link, nil
}

func (r *PromoRepositoryImpl) IncrementRedemptions(ctx context.Context, promoCodeID string) error {
	query := `
		UPDATE promo_codes
		SET redemptions = redemptions + 1
		WHERE id = $1 AND (max_redemptions = 0 OR redemptions < max_redemptions)
	`

	result, err := database.Conn(ctx, r.pool).Exec(ctx, query, promoCodeID)
	if err != nil {
		return fmt.Errorf("failed to redeem promo code: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPromoCodeExhausted
	}
	return nil
}

func (r *PromoRepositoryImpl) SavePromoCode(ctx context.Context, promo *model.PromoCode) error {
	query := `
		INSERT INTO promo_codes (
			id, code, event_id, discount_type, discount_value, starts_at, ends_at,
			max_redemptions, redemptions, max_per_user, eligible_tier_ids, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE
		SET discount_type = EXCLUDED.discount_type, discount_value = EXCLUDED.discount_value,
			starts_at = EXCLUDED.starts_at, ends_at = EXCLUDED.ends_at,
			max_redemptions = EXCLUDED.max_redemptions, max_per_user = EXCLUDED.max_per_user,
			eligible_tier_ids = EXCLUDED.eligible_tier_ids, active = EXCLUDED.active
	`
	eligible := promo.EligibleTierIDs
	if eligible == nil {
		eligible = []string{}
	}
	_, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		promo.ID, promo.Code, promo.EventID, promo.Discount.Type, promo.Discount.Value,
		promo.StartsAt, promo.EndsAt, promo.MaxRedemptions, promo.Redemptions, promo.MaxPerUser,
		eligible, promo.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to save promo code: %w", err)
	}
	return nil
}

func (r *PromoRepositoryImpl) SavePromoterLink(ctx context.Context, link *model.PromoterLink) error {
	overrides, err := json.Marshal(link.TierOverrides)
	if err != nil {
		return err
	}
	if link.TierOverrides == nil {
		overrides = []byte("{}")
	}
	excluded := link.ExcludedTierIDs
	if excluded == nil {
		excluded = []string{}
	}

	query := `
		INSERT INTO promoter_links (code, event_id, discount_type, discount_value, tier_overrides, excluded_tier_ids, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id, code) DO UPDATE
		SET discount_type = EXCLUDED.discount_type, discount_value = EXCLUDED.discount_value,
			tier_overrides = EXCLUDED.tier_overrides, excluded_tier_ids = EXCLUDED.excluded_tier_ids,
			active = EXCLUDED.active
	`
	_, err = database.Conn(ctx, r.pool).Exec(ctx, query,
		link.Code, link.EventID, link.Discount.Type, link.Discount.Value, overrides, excluded, link.Active)
	if err != nil {
		return fmt.Errorf("failed to save promoter link: %w", err)
	}
	return nil
}
