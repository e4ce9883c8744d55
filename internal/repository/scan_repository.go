package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
)

type ScanRepository interface {
	Exists(ctx context.Context, identifier string) (bool, error)

	// Transaction methods
	// Insert is first-writer-wins: it returns false when the identifier was already scanned.
	Insert(ctx context.Context, record *model.ScanRecord) (bool, error)
}

type ScanRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewScanRepository(pool *pgxpool.Pool) ScanRepository {
	return &ScanRepositoryImpl{
		pool: pool,
	}
}

func (r *ScanRepositoryImpl) Insert(ctx context.Context, record *model.ScanRecord) (bool, error) {
	query := `
		INSERT INTO scan_records (identifier, event_id, order_id, scanner_id, scanned_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (identifier) DO NOTHING
	`
	result, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		record.Identifier, record.EventID, record.OrderID, record.ScannerID, record.ScannedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert scan record: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

func (r *ScanRepositoryImpl) Exists(ctx context.Context, identifier string) (bool, error) {
	var exists bool
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM scan_records WHERE identifier = $1)`, identifier).Scan(&exists)
	return exists, err
}
