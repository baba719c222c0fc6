package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gruppopolinex/polinex-backend/pkg/logger"
	pkgredis "github.com/gruppopolinex/polinex-backend/pkg/redis"
)

// RedisSnapshotStore keeps the full cart snapshot as a JSON array under a
// single key per cart token.
type RedisSnapshotStore struct {
	client *pkgredis.Client
	ttl    time.Duration
	logg   *logger.Logger
}

// NewRedisSnapshotStore builds a redis-backed snapshot store.
func NewRedisSnapshotStore(client *pkgredis.Client, ttl time.Duration, logg *logger.Logger) (*RedisSnapshotStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisSnapshotStore{client: client, ttl: ttl, logg: logg}, nil
}

// Load reads the snapshot for the given token. An absent key or a value that
// does not decode as an item list reads as an empty cart; the cart is
// recreatable state and tampering with the key must never crash callers.
func (r *RedisSnapshotStore) Load(ctx context.Context, token string) ([]Item, error) {
	raw, err := r.client.Get(ctx, r.client.CartKey(token))
	if err != nil {
		if pkgredis.IsNil(err) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		if r.logg != nil {
			ctx = r.logg.WithCartToken(ctx, token)
			r.logg.Warn(ctx, "cart snapshot malformed, treating as empty")
		}
		return []Item{}, nil
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Save replaces the stored snapshot with the provided item list. An empty
// snapshot deletes the key; an absent key already reads as an empty cart.
func (r *RedisSnapshotStore) Save(ctx context.Context, token string, items []Item) error {
	if len(items) == 0 {
		if err := r.client.Del(ctx, r.client.CartKey(token)); err != nil {
			return fmt.Errorf("clear cart snapshot: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.client.CartKey(token), data, r.ttl); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}
