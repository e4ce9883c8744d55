package scheduler

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

const sweepQueue = "maintenance"

// Runner owns the asynq server consuming sweep tasks and the scheduler enqueuing them on SweepCron.
type Runner struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

func NewRunner(redisCfg config.RedisConfig, cfg config.CheckoutConfig, handlers *Handlers) (*Runner, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr(),
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			sweepQueue: 1,
		},
	})

	mux := asynq.NewServeMux()
	handlers.Register(mux)

	scheduler := asynq.NewScheduler(redisOpt, nil)
	for _, taskType := range []string{TypeReservationExpireSweep, TypeTransferExpireSweep} {
		task, err := NewSweepTask(taskType, cfg.SweepBatchSize)
		if err != nil {
			return nil, err
		}
		// A tick is dropped while the previous sweep task is still queued.
		if _, err := scheduler.Register(cfg.SweepCron, task, asynq.Queue(sweepQueue), asynq.Unique(time.Minute), asynq.MaxRetry(1)); err != nil {
			return nil, err
		}
	}

	return &Runner{
		server:    server,
		scheduler: scheduler,
		mux:       mux,
		logger:    logger.WithComponent("scheduler"),
	}, nil
}

func (r *Runner) Start() error {
	if err := r.scheduler.Start(); err != nil {
		return err
	}
	if err := r.server.Start(r.mux); err != nil {
		r.scheduler.Shutdown()
		return err
	}
	r.logger.Info("sweep scheduler started")
	return nil
}

func (r *Runner) Shutdown() {
	r.scheduler.Shutdown()
	r.server.Shutdown()
}

// RunLocal drives the same handlers from a ticker. Used with the memory driver, where no Redis is available.
func RunLocal(ctx context.Context, interval time.Duration, batchSize int, handlers *Handlers) {
	tasks := make([]*asynq.Task, 0, 2)
	for _, taskType := range []string{TypeReservationExpireSweep, TypeTransferExpireSweep} {
		task, err := NewSweepTask(taskType, batchSize)
		if err != nil {
			handlers.logger.Error("build sweep task failed", zap.String("task", taskType), zap.Error(err))
			return
		}
		tasks = append(tasks, task)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = handlers.HandleReservationSweep(ctx, tasks[0])
			_ = handlers.HandleTransferSweep(ctx, tasks[1])
		}
	}
}
