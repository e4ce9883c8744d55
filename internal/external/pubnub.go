package external

import (
	"context"
	"encoding/json"
	"fmt"

	pubnubgo "github.com/pubnub/go/v7"
	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

var _ Notifier = (*PubNubNotifier)(nil)

// PubNubNotifier publishes confirmations on a per-buyer channel.
type PubNubNotifier struct {
	pn *pubnubgo.PubNub
}

func NewPubNubNotifier(cfg config.PubNubConfig) (*PubNubNotifier, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("pubnub: publish and subscribe keys are required")
	}

	pnConfig := pubnubgo.NewConfigWithUserId(pubnubgo.UserId(cfg.UserID))
	pnConfig.PublishKey = cfg.PublishKey
	pnConfig.SubscribeKey = cfg.SubscribeKey
	pnConfig.SecretKey = cfg.SecretKey

	return &PubNubNotifier{pn: pubnubgo.NewPubNub(pnConfig)}, nil
}

func BuyerChannel(buyerID string) string {
	return fmt.Sprintf("orders-%s", buyerID)
}

func (n *PubNubNotifier) NotifyOrderConfirmed(ctx context.Context, event model.OrderConfirmedEvent) error {
	message, err := json.Marshal(map[string]any{
		"type":  "order_confirmed",
		"order": event,
	})
	if err != nil {
		return err
	}

	_, _, err = n.pn.Publish().
		Channel(BuyerChannel(event.BuyerID)).
		Message(string(message)).
		Execute()
	if err != nil {
		return fmt.Errorf("pubnub publish: %w", err)
	}
	return nil
}

// LogNotifier is used when no push provider is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: logger.WithComponent("notifier")}
}

func (n *LogNotifier) NotifyOrderConfirmed(ctx context.Context, event model.OrderConfirmedEvent) error {
	n.logger.Info("order confirmed",
		zap.String("order_id", event.OrderID),
		zap.String("event_id", event.EventID),
		zap.String("buyer_id", event.BuyerID),
		zap.Int("tickets", event.Tickets),
	)
	return nil
}
