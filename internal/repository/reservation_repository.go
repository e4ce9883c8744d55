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

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	// FindLiveByQueueID returns the active, unexpired reservation carrying the idempotency key.
	FindLiveByQueueID(ctx context.Context, queueID string, now time.Time) (*model.Reservation, error)
	// SumLiveHolds sums quantities held on a tier by active reservations expiring after now.
	SumLiveHolds(ctx context.Context, tierID string, now time.Time) (int, error)
	SumLiveHoldsByEvent(ctx context.Context, eventID string, now time.Time) (map[string]int, error)
	// ExpireOverdue flips up to limit overdue active reservations to expired.
	ExpireOverdue(ctx context.Context, now time.Time, limit int) (int, error)

	// Transaction methods
	FindByIDWithLock(ctx context.Context, id string) (*model.Reservation, error)
	// UpdateStatus is a compare-and-set on status; it returns false when the row was not in from.
	UpdateStatus(ctx context.Context, id string, from, to model.ReservationStatus, orderID string) (bool, error)
}

type ReservationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &ReservationRepositoryImpl{
		pool: pool,
	}
}

const reservationColumns = `
	id, event_id, customer_id, device_id, external_queue_id, items, status, order_id,
	created_at, expires_at, updated_at`

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var (
		reservation model.Reservation
		items       []byte
	)
	err := row.Scan(
		&reservation.ID,
		&reservation.EventID,
		&reservation.CustomerID,
		&reservation.DeviceID,
		&reservation.ExternalQueueID,
		&items,
		&reservation.Status,
		&reservation.OrderID,
		&reservation.CreatedAt,
		&reservation.ExpiresAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &reservation.Items); err != nil {
		return nil, fmt.Errorf("decode reservation items: %w", err)
	}
	return &reservation, nil
}

func (r *ReservationRepositoryImpl) Create(ctx context.Context, reservation *model.Reservation) error {
	items, err := json.Marshal(reservation.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = database.Conn(ctx, r.pool).Exec(ctx, query,
		reservation.ID, reservation.EventID, reservation.CustomerID, reservation.DeviceID,
		reservation.ExternalQueueID, items, reservation.Status, reservation.OrderID,
		reservation.CreatedAt, reservation.ExpiresAt, reservation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepositoryImpl) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

func (r *ReservationRepositoryImpl) FindByIDWithLock(ctx context.Context, id string) (*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

	reservation, err := scanReservation(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

func (r *ReservationRepositoryImpl) FindLiveByQueueID(ctx context.Context, queueID string, now time.Time) (*model.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE external_queue_id = $1 AND status = $2 AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	reservation, err := scanReservation(database.Conn(ctx, r.pool).QueryRow(ctx, query, queueID, model.ReservationStatusActive, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

func (r *ReservationRepositoryImpl) SumLiveHolds(ctx context.Context, tierID string, now time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM((item->>'quantity')::int), 0)
		FROM reservations r, jsonb_array_elements(r.items) AS item
		WHERE r.status = $1 AND r.expires_at > $2 AND item->>'tier_id' = $3
	`

	var held int
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query, model.ReservationStatusActive, now, tierID).Scan(&held)
	if err != nil {
		return 0, err
	}
	return held, nil
}

func (r *ReservationRepositoryImpl) SumLiveHoldsByEvent(ctx context.Context, eventID string, now time.Time) (map[string]int, error) {
	query := `
		SELECT item->>'tier_id', COALESCE(SUM((item->>'quantity')::int), 0)
		FROM reservations r, jsonb_array_elements(r.items) AS item
		WHERE r.event_id = $1 AND r.status = $2 AND r.expires_at > $3
		GROUP BY item->>'tier_id'
	`

	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, eventID, model.ReservationStatusActive, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	held := make(map[string]int)
	for rows.Next() {
		var (
			tierID string
			qty    int
		)
		if err := rows.Scan(&tierID, &qty); err != nil {
			return nil, err
		}
		held[tierID] = qty
	}

	return held, rows.Err()
}

func (r *ReservationRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to model.ReservationStatus, orderID string) (bool, error) {
	query := `
		UPDATE reservations
		SET status = $1, order_id = CASE WHEN $2 = '' THEN order_id ELSE $2 END, updated_at = $3
		WHERE id = $4 AND status = $5
	`

	result, err := database.Conn(ctx, r.pool).Exec(ctx, query, to, orderID, time.Now().UTC(), id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update reservation status: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

func (r *ReservationRepositoryImpl) ExpireOverdue(ctx context.Context, now time.Time, limit int) (int, error) {
	query := `
		UPDATE reservations
		SET status = $1, updated_at = $2
		WHERE id IN (
			SELECT id FROM reservations
			WHERE status = $3 AND expires_at <= $2
			ORDER BY expires_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		) AND status = $3
	`

	result, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		model.ReservationStatusExpired, now, model.ReservationStatusActive, limit)
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
