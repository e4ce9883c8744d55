package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/external"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/monitoring"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/queue"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

type NotificationWorker interface {
	// Start subscribes and returns; deliveries are handled on a background goroutine until ctx ends.
	Start(ctx context.Context) error
}

type NotificationWorkerImpl struct {
	notifier external.Notifier
	queue    queue.ConfirmationQueue
	logger   *zap.Logger
}

func NewNotificationWorker(notifier external.Notifier, queue queue.ConfirmationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		notifier: notifier,
		queue:    queue,
		logger:   logger.WithComponent("worker"),
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			w.handle(ctx, msg)
		}
	}()
	return nil
}

func (w *NotificationWorkerImpl) handle(ctx context.Context, msg queue.Delivery) {
	if msg.Data == nil {
		msg.Nack(false)
		return
	}

	if err := w.notifier.NotifyOrderConfirmed(ctx, *msg.Data); err != nil {
		w.logger.Error("notify order confirmed failed",
			zap.String("order_id", msg.Data.OrderID),
			zap.Error(err),
		)
		monitoring.RecordNotification("retry")
		msg.Nack(true)
		return
	}

	monitoring.RecordNotification("sent")
	msg.Ack()
}
