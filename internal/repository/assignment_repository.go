package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

type AssignmentRepository interface {
	FindByID(ctx context.Context, id string) (*model.TicketAssignment, error)
	// FindActiveByRedeemer returns the redeemer's non-cancelled assignment on a bundle.
	FindActiveByRedeemer(ctx context.Context, bundleID, redeemerID string) (*model.TicketAssignment, error)
	ListByBundle(ctx context.Context, bundleID string) ([]*model.TicketAssignment, error)

	// Transaction methods
	Create(ctx context.Context, assignment *model.TicketAssignment) error
	FindByIDWithLock(ctx context.Context, id string) (*model.TicketAssignment, error)
	UpdateStatus(ctx context.Context, assignment *model.TicketAssignment) error
}

type AssignmentRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &AssignmentRepositoryImpl{
		pool: pool,
	}
}

const assignmentColumns = `
	id, bundle_id, order_id, event_id, tier_id, slot_index, redeemer_id, original_purchaser_id,
	required_gender, qr_payload, status, used_at, created_at, updated_at`

func scanAssignment(row pgx.Row) (*model.TicketAssignment, error) {
	var (
		assignment model.TicketAssignment
		gender     string
	)
	err := row.Scan(
		&assignment.ID,
		&assignment.BundleID,
		&assignment.OrderID,
		&assignment.EventID,
		&assignment.TierID,
		&assignment.SlotIndex,
		&assignment.RedeemerID,
		&assignment.OriginalPurchaserID,
		&gender,
		&assignment.QRPayload,
		&assignment.Status,
		&assignment.UsedAt,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	assignment.RequiredGender = model.ParseGenderRequirement(gender)
	return &assignment, nil
}

func (r *AssignmentRepositoryImpl) Create(ctx context.Context, assignment *model.TicketAssignment) error {
	query := `
		INSERT INTO ticket_assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		assignment.ID, assignment.BundleID, assignment.OrderID, assignment.EventID, assignment.TierID,
		assignment.SlotIndex, assignment.RedeemerID, assignment.OriginalPurchaserID,
		string(assignment.RequiredGender), assignment.QRPayload, assignment.Status, assignment.UsedAt,
		assignment.CreatedAt, assignment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepositoryImpl) FindByID(ctx context.Context, id string) (*model.TicketAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM ticket_assignments WHERE id = $1`

	assignment, err := scanAssignment(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (r *AssignmentRepositoryImpl) FindByIDWithLock(ctx context.Context, id string) (*model.TicketAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM ticket_assignments WHERE id = $1 FOR UPDATE`

	assignment, err := scanAssignment(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (r *AssignmentRepositoryImpl) FindActiveByRedeemer(ctx context.Context, bundleID, redeemerID string) (*model.TicketAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM ticket_assignments
		WHERE bundle_id = $1 AND redeemer_id = $2 AND status <> $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	assignment, err := scanAssignment(database.Conn(ctx, r.pool).QueryRow(ctx, query,
		bundleID, redeemerID, model.AssignmentStatusCancelled))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (r *AssignmentRepositoryImpl) ListByBundle(ctx context.Context, bundleID string) ([]*model.TicketAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM ticket_assignments WHERE bundle_id = $1 ORDER BY slot_index, created_at`

	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, bundleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*model.TicketAssignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

func (r *AssignmentRepositoryImpl) UpdateStatus(ctx context.Context, assignment *model.TicketAssignment) error {
	assignment.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE ticket_assignments
		SET status = $1, used_at = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		assignment.Status, assignment.UsedAt, assignment.UpdatedAt, assignment.ID)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}
