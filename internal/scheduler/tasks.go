package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

const (
	TypeReservationExpireSweep = "reservation:expire_sweep"
	TypeTransferExpireSweep    = "transfer:expire_sweep"
)

type SweepPayload struct {
	BatchSize int `json:"batch_size"`
}

// Sweeper moves overdue records to their expired status, at most batchSize per call.
type Sweeper interface {
	ExpireSweep(ctx context.Context, batchSize int) (int, error)
}

func NewSweepTask(taskType string, batchSize int) (*asynq.Task, error) {
	payload, err := json.Marshal(SweepPayload{BatchSize: batchSize})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, payload), nil
}

type Handlers struct {
	reservations Sweeper
	transfers    Sweeper
	logger       *zap.Logger
}

func NewHandlers(reservations, transfers Sweeper) *Handlers {
	return &Handlers{
		reservations: reservations,
		transfers:    transfers,
		logger:       logger.WithComponent("scheduler"),
	}
}

func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeReservationExpireSweep, h.HandleReservationSweep)
	mux.HandleFunc(TypeTransferExpireSweep, h.HandleTransferSweep)
}

func (h *Handlers) HandleReservationSweep(ctx context.Context, t *asynq.Task) error {
	return h.sweep(ctx, t, h.reservations)
}

func (h *Handlers) HandleTransferSweep(ctx context.Context, t *asynq.Task) error {
	return h.sweep(ctx, t, h.transfers)
}

func (h *Handlers) sweep(ctx context.Context, t *asynq.Task, sweeper Sweeper) error {
	var payload SweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	if payload.BatchSize <= 0 {
		return fmt.Errorf("%s: batch_size must be positive: %w", t.Type(), asynq.SkipRetry)
	}

	// Drain full batches so a backlog clears within one tick.
	total := 0
	for {
		n, err := sweeper.ExpireSweep(ctx, payload.BatchSize)
		total += n
		if err != nil {
			h.logger.Error("expire sweep failed",
				zap.String("task", t.Type()),
				zap.Int("expired", total),
				zap.Error(err),
			)
			return err
		}
		if n < payload.BatchSize || ctx.Err() != nil {
			break
		}
	}

	if total > 0 {
		h.logger.Info("expire sweep done", zap.String("task", t.Type()), zap.Int("expired", total))
	}
	return nil
}
