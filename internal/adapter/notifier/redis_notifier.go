package notifier

import (
	"context"
	"fmt"

	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainNotifier "github.com/wekeepgrowing/launch-revenue/internal/domain/notifier"
	"github.com/wekeepgrowing/launch-revenue/pkg/messaging"
)

// redisNotifier publishes revenue events over Redis pub/sub
type redisNotifier struct {
	redisClient messaging.RedisClient
	channel     string
}

// NewRedisNotifier creates a notifier that publishes to channel and to channel:{productID}
func NewRedisNotifier(client messaging.RedisClient, channel string) domainNotifier.Notifier {
	return &redisNotifier{
		redisClient: client,
		channel:     channel,
	}
}

// Notify publishes to the per-product channel first, then to the shared channel
func (n *redisNotifier) Notify(ctx context.Context, event entity.RevenueEvent) error {
	productChannel := fmt.Sprintf("%s:%s", n.channel, event.ProductID)

	if err := n.redisClient.Publish(ctx, productChannel, event); err != nil {
		return fmt.Errorf("failed to publish to product channel: %w", err)
	}

	if err := n.redisClient.Publish(ctx, n.channel, event); err != nil {
		return fmt.Errorf("failed to publish to shared channel: %w", err)
	}

	return nil
}
