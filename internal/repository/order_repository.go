package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

// OrderRepository stores orders in two buckets sharing one shape: orders and rsvp_orders.
type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByReservationID(ctx context.Context, reservationID string) (*model.Order, error)
	// HasActiveRSVP matches on user id or email, whichever is set.
	HasActiveRSVP(ctx context.Context, eventID, userID, email string) (bool, error)
	// CountPromoRedemptions counts confirmed orders of userID using the code, other than excludeOrderID.
	CountPromoRedemptions(ctx context.Context, promoCodeID, userID, excludeOrderID string) (int, error)

	// Transaction methods
	// Create inserts into the order's bucket; it returns false if the id already exists.
	Create(ctx context.Context, order *model.Order) (bool, error)
	FindByIDWithLock(ctx context.Context, id string) (*model.Order, error)
	// UpdateStatusWithLock persists status, payment and line fields when the stored status still equals from.
	UpdateStatusWithLock(ctx context.Context, order *model.Order, from model.OrderStatus) error
}

type OrderRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &OrderRepositoryImpl{
		pool: pool,
	}
}

var buckets = []model.Bucket{model.BucketPaid, model.BucketRSVP}

const orderColumns = `
	id, event_id, kind, buyer, lines, subtotal, promoter_discount, promo_discount,
	platform_fee, payment_fee, tax, total_amount, status, payment_method,
	gateway_order_id, payment_id, reservation_id, promoter_code, promo_code_id,
	created_at, updated_at, confirmed_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order model.Order
		buyer []byte
		lines []byte
	)
	err := row.Scan(
		&order.ID,
		&order.EventID,
		&order.Kind,
		&buyer,
		&lines,
		&order.Subtotal,
		&order.PromoterDiscount,
		&order.PromoDiscount,
		&order.PlatformFee,
		&order.PaymentFee,
		&order.Tax,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentMethod,
		&order.GatewayOrderID,
		&order.PaymentID,
		&order.ReservationID,
		&order.PromoterCode,
		&order.PromoCodeID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.ConfirmedAt,
	)
	if err != nil {
		return nil, err
	}
	if !order.Status.IsValid() {
		return nil, fmt.Errorf("order %s: unknown status %q", order.ID, order.Status)
	}
	if err := json.Unmarshal(buyer, &order.Buyer); err != nil {
		return nil, fmt.Errorf("decode buyer: %w", err)
	}
	if err := json.Unmarshal(lines, &order.Lines); err != nil {
		return nil, fmt.Errorf("decode order lines: %w", err)
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *model.Order) (bool, error) {
	buyer, err := json.Marshal(order.Buyer)
	if err != nil {
		return false, err
	}
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, event_id, kind, buyer, buyer_user_id, buyer_email, lines, subtotal,
			promoter_discount, promo_discount, platform_fee, payment_fee, tax, total_amount,
			status, payment_method, gateway_order_id, payment_id, reservation_id,
			promoter_code, promo_code_id, created_at, updated_at, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (id) DO NOTHING
	`, order.Kind.Bucket())

	result, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		order.ID, order.EventID, order.Kind, buyer, order.Buyer.UserID, strings.ToLower(order.Buyer.Email),
		lines, order.Subtotal, order.PromoterDiscount, order.PromoDiscount, order.PlatformFee,
		order.PaymentFee, order.Tax, order.TotalAmount, order.Status, order.PaymentMethod,
		order.GatewayOrderID, order.PaymentID, order.ReservationID, order.PromoterCode,
		order.PromoCodeID, order.CreatedAt, order.UpdatedAt, order.ConfirmedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) && order.Kind == model.OrderKindRSVP {
			return false, apperrors.ErrRSVPAlreadyExists
		}
		return false, fmt.Errorf("failed to create order: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id string) (*model.Order, error) {
	return r.findOne(ctx, "id = $1", id, false)
}

func (r *OrderRepositoryImpl) FindByIDWithLock(ctx context.Context, id string) (*model.Order, error) {
	return r.findOne(ctx, "id = $1", id, true)
}

func (r *OrderRepositoryImpl) FindByReservationID(ctx context.Context, reservationID string) (*model.Order, error) {
	return r.findOne(ctx, "reservation_id = $1", reservationID, false)
}

func (r *OrderRepositoryImpl) findOne(ctx context.Context, where string, arg string, lock bool) (*model.Order, error) {
	suffix := ""
	if lock {
		suffix = " FOR UPDATE"
	}

	conn := database.Conn(ctx, r.pool)
	for _, bucket := range buckets {
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s%s`, orderColumns, bucket, where, suffix)
		order, err := scanOrder(conn.QueryRow(ctx, query, arg))
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	return nil, apperrors.ErrOrderNotFound
}

func (r *OrderRepositoryImpl) HasActiveRSVP(ctx context.Context, eventID, userID, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM rsvp_orders
			WHERE event_id = $1
			  AND status <> $2
			  AND (($3 <> '' AND buyer_user_id = $3) OR ($4 <> '' AND buyer_email = $4))
		)
	`

	var exists bool
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		eventID, model.OrderStatusCancelled, userID, strings.ToLower(email)).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *OrderRepositoryImpl) CountPromoRedemptions(ctx context.Context, promoCodeID, userID, excludeOrderID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE promo_code_id = $1 AND buyer_user_id = $2 AND status = $3 AND id <> $4
	`

	var count int
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query, promoCodeID, userID, model.OrderStatusConfirmed, excludeOrderID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrderRepositoryImpl) UpdateStatusWithLock(ctx context.Context, order *model.Order, from model.OrderStatus) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return err
	}

	order.UpdatedAt = time.Now().UTC()
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, payment_id = $2, gateway_order_id = $3, lines = $4,
			confirmed_at = $5, updated_at = $6
		WHERE id = $7 AND status = $8
	`, order.Kind.Bucket())

	result, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		order.Status, order.PaymentID, order.GatewayOrderID, lines,
		order.ConfirmedAt, order.UpdatedAt, order.ID, from,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInvalidOrderStatus
	}

	return nil
}
