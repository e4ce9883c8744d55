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

type TransferRepository interface {
	FindByID(ctx context.Context, id string) (*model.Transfer, error)
	// FindPendingBySlot returns the pending transfer on a slot, or ErrTransferNotFound.
	FindPendingBySlot(ctx context.Context, bundleID string, slotIndex int) (*model.Transfer, error)
	ExpireOverdue(ctx context.Context, now time.Time, limit int) (int, error)

	// Transaction methods
	// Create fails with ErrTransferAlreadyExists when the slot already has a pending transfer.
	Create(ctx context.Context, transfer *model.Transfer) error
	FindByIDWithLock(ctx context.Context, id string) (*model.Transfer, error)
	FindByTokenWithLock(ctx context.Context, token string) (*model.Transfer, error)
	// UpdateStatus is a compare-and-set from pending.
	UpdateStatus(ctx context.Context, transfer *model.Transfer) error
}

type TransferRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTransferRepository(pool *pgxpool.Pool) TransferRepository {
	return &TransferRepositoryImpl{
		pool: pool,
	}
}

const transferColumns = `
	id, bundle_id, slot_index, event_id, sender_id, recipient_email, token, status,
	accepted_by, assignment_id, expires_at, created_at, updated_at`

func scanTransfer(row pgx.Row) (*model.Transfer, error) {
	var transfer model.Transfer
	err := row.Scan(
		&transfer.ID,
		&transfer.BundleID,
		&transfer.SlotIndex,
		&transfer.EventID,
		&transfer.SenderID,
		&transfer.RecipientEmail,
		&transfer.Token,
		&transfer.Status,
		&transfer.AcceptedBy,
		&transfer.AssignmentID,
		&transfer.ExpiresAt,
		&transfer.CreatedAt,
		&transfer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *TransferRepositoryImpl) findOne(ctx context.Context, query string, args ...any) (*model.Transfer, error) {
	transfer, err := scanTransfer(database.Conn(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTransferNotFound
		}
		return nil, err
	}
	return transfer, nil
}

func (r *TransferRepositoryImpl) Create(ctx context.Context, transfer *model.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		transfer.ID, transfer.BundleID, transfer.SlotIndex, transfer.EventID, transfer.SenderID,
		transfer.RecipientEmail, transfer.Token, transfer.Status, transfer.AcceptedBy,
		transfer.AssignmentID, transfer.ExpiresAt, transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperrors.ErrTransferAlreadyExists
		}
		return fmt.Errorf("failed to create transfer: %w", err)
	}
	return nil
}

func (r *TransferRepositoryImpl) FindByID(ctx context.Context, id string) (*model.Transfer, error) {
	return r.findOne(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
}

func (r *TransferRepositoryImpl) FindByIDWithLock(ctx context.Context, id string) (*model.Transfer, error) {
	return r.findOne(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1 FOR UPDATE`, id)
}

func (r *TransferRepositoryImpl) FindByTokenWithLock(ctx context.Context, token string) (*model.Transfer, error) {
	return r.findOne(ctx, `SELECT `+transferColumns+` FROM transfers WHERE token = $1 FOR UPDATE`, token)
}

func (r *TransferRepositoryImpl) FindPendingBySlot(ctx context.Context, bundleID string, slotIndex int) (*model.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE bundle_id = $1 AND slot_index = $2 AND status = $3`
	return r.findOne(ctx, query, bundleID, slotIndex, model.TransferStatusPending)
}

func (r *TransferRepositoryImpl) UpdateStatus(ctx context.Context, transfer *model.Transfer) error {
	transfer.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE transfers
		SET status = $1, accepted_by = $2, assignment_id = $3, updated_at = $4
		WHERE id = $5 AND status = $6
	`
	result, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		transfer.Status, transfer.AcceptedBy, transfer.AssignmentID, transfer.UpdatedAt,
		transfer.ID, model.TransferStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update transfer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTransferNotPending
	}
	return nil
}

func (r *TransferRepositoryImpl) ExpireOverdue(ctx context.Context, now time.Time, limit int) (int, error) {
	query := `
		UPDATE transfers
		SET status = $1, updated_at = $2
		WHERE id IN (
			SELECT id FROM transfers
			WHERE status = $3 AND expires_at <= $2
			ORDER BY expires_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		) AND status = $3
	`
	result, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		model.TransferStatusExpired, now, model.TransferStatusPending, limit)
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
