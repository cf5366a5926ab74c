package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// EventPublisher broadcasts wallet events on Redis pub/sub channels.
type EventPublisher struct {
	client *goredis.Client
}

// NewEventPublisher creates a Redis pub/sub publisher.
func NewEventPublisher(client *goredis.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// PublishBalanceUpdated sends event on the wallet.balance_updated channel.
func (p *EventPublisher) PublishBalanceUpdated(ctx context.Context, event domain.BalanceUpdatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode balance event: %w", err)
	}
	if err := p.client.Publish(ctx, domain.EventBalanceUpdated, data).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", domain.EventBalanceUpdated, err)
	}
	return nil
}
