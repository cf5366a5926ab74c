package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"orangecat-wallets/internal/adapter/storage/redis"
	"orangecat-wallets/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublisher_PublishBalanceUpdated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, domain.EventBalanceUpdated)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	event := domain.BalanceUpdatedEvent{
		WalletID:   uuid.New(),
		Owner:      domain.Owner{Type: domain.OwnerProfile, ID: uuid.New()},
		BalanceBTC: decimal.RequireFromString("0.5"),
		TxCount:    3,
		AsOf:       time.Now().UTC().Truncate(time.Second),
		Provider:   "mempool",
	}
	require.NoError(t, redis.NewEventPublisher(client).PublishBalanceUpdated(ctx, event))

	select {
	case msg := <-sub.Channel():
		var got domain.BalanceUpdatedEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, event.WalletID, got.WalletID)
		assert.Equal(t, event.Owner, got.Owner)
		assert.True(t, got.BalanceBTC.Equal(event.BalanceBTC))
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}
