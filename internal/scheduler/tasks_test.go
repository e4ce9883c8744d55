package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSweeper pretends a fixed backlog of overdue records and tracks each call's batch size.
type fakeSweeper struct {
	mu      sync.Mutex
	backlog int
	calls   []int
	err     error
}

func (f *fakeSweeper) ExpireSweep(ctx context.Context, batchSize int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, batchSize)
	if f.err != nil {
		return 0, f.err
	}
	n := min(batchSize, f.backlog)
	f.backlog -= n
	return n, nil
}

func (f *fakeSweeper) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestSweepHandlers(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - drains full batches", func(t *testing.T) {
		reservations := &fakeSweeper{backlog: 5}
		h := NewHandlers(reservations, &fakeSweeper{})
		task, err := NewSweepTask(TypeReservationExpireSweep, 2)
		require.NoError(t, err)

		err = h.HandleReservationSweep(ctx, task)

		require.NoError(t, err)
		assert.Equal(t, []int{2, 2, 2}, reservations.calls)
		assert.Equal(t, 0, reservations.backlog)
	})

	t.Run("Success - empty backlog is one call", func(t *testing.T) {
		transfers := &fakeSweeper{}
		h := NewHandlers(&fakeSweeper{}, transfers)
		task, err := NewSweepTask(TypeTransferExpireSweep, 100)
		require.NoError(t, err)

		require.NoError(t, h.HandleTransferSweep(ctx, task))
		assert.Equal(t, 1, transfers.callCount())
	})

	t.Run("Failed - store error is returned for retry", func(t *testing.T) {
		boom := errors.New("connection reset")
		h := NewHandlers(&fakeSweeper{err: boom}, &fakeSweeper{})
		task, err := NewSweepTask(TypeReservationExpireSweep, 10)
		require.NoError(t, err)

		err = h.HandleReservationSweep(ctx, task)

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("Failed - malformed payload skips retry", func(t *testing.T) {
		sweeper := &fakeSweeper{backlog: 3}
		h := NewHandlers(sweeper, sweeper)

		err := h.HandleReservationSweep(ctx, asynq.NewTask(TypeReservationExpireSweep, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)

		err = h.HandleTransferSweep(ctx, asynq.NewTask(TypeTransferExpireSweep, []byte(`{"batch_size":0}`)))
		assert.ErrorIs(t, err, asynq.SkipRetry)

		assert.Zero(t, sweeper.callCount())
	})
}

func TestServeMuxRoutesSweepTasks(t *testing.T) {
	reservations := &fakeSweeper{backlog: 1}
	transfers := &fakeSweeper{backlog: 1}
	mux := asynq.NewServeMux()
	NewHandlers(reservations, transfers).Register(mux)

	for _, taskType := range []string{TypeReservationExpireSweep, TypeTransferExpireSweep} {
		task, err := NewSweepTask(taskType, 10)
		require.NoError(t, err)
		require.NoError(t, mux.ProcessTask(context.Background(), task))
	}

	assert.Equal(t, 1, reservations.callCount())
	assert.Equal(t, 1, transfers.callCount())
}

func TestRunLocal(t *testing.T) {
	reservations := &fakeSweeper{backlog: 3}
	transfers := &fakeSweeper{backlog: 1}
	h := NewHandlers(reservations, transfers)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunLocal(ctx, 10*time.Millisecond, 50, h)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return reservations.callCount() >= 1 && transfers.callCount() >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunLocal did not stop after cancel")
	}

	reservations.mu.Lock()
	defer reservations.mu.Unlock()
	assert.Equal(t, 0, reservations.backlog)
}
