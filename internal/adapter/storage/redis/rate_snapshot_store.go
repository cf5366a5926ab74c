package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const rateSnapshotKey = "ocw:rates:btc"

// RateSnapshotStore shares the latest BTC rate table between API instances,
// so only one of them has to hit the upstream price API per TTL.
type RateSnapshotStore struct {
	client *goredis.Client
	key    string
}

// NewRateSnapshotStore creates a Redis-backed rate snapshot store.
func NewRateSnapshotStore(client *goredis.Client) *RateSnapshotStore {
	return &RateSnapshotStore{client: client, key: rateSnapshotKey}
}

var _ ports.RateSnapshotStore = (*RateSnapshotStore)(nil)

// Load returns the stored snapshot, or nil, nil if none exists.
func (s *RateSnapshotStore) Load(ctx context.Context) ([]domain.ExchangeRate, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis rate snapshot get: %w", err)
	}

	var rates []domain.ExchangeRate
	if err := json.Unmarshal(val, &rates); err != nil {
		return nil, fmt.Errorf("decode rate snapshot: %w", err)
	}
	return rates, nil
}

// Save stores the snapshot with ttl.
func (s *RateSnapshotStore) Save(ctx context.Context, rates []domain.ExchangeRate, ttl time.Duration) error {
	data, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("encode rate snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis rate snapshot set: %w", err)
	}
	return nil
}
