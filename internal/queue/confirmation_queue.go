package queue

import (
	"context"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
)

type Delivery struct {
	Data *model.OrderConfirmedEvent
	Ack  func()
	Nack func(requeue bool)
}

// ConfirmationQueue carries OrderConfirmedEvent from checkout to the notification worker.
type ConfirmationQueue interface {
	PublishConfirmed(ctx context.Context, event *model.OrderConfirmedEvent) error
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

// MemoryConfirmationQueue is the in-process queue used with the memory store.
type MemoryConfirmationQueue struct {
	ch chan *model.OrderConfirmedEvent
}

func NewMemoryConfirmationQueue(bufferSize int) ConfirmationQueue {
	return &MemoryConfirmationQueue{
		ch: make(chan *model.OrderConfirmedEvent, bufferSize),
	}
}

func (q *MemoryConfirmationQueue) PublishConfirmed(ctx context.Context, event *model.OrderConfirmedEvent) error {
	select {
	case q.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryConfirmationQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: event,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if !requeue {
							return
						}
						// requeue without blocking the consumer when the buffer is full
						select {
						case q.ch <- event:
						default:
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
