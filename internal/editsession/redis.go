package editsession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMirror persists draft documents in Redis with a TTL. Drafts survive
// process restarts but expire after the configured idle window, matching the
// session-scoped (not permanent) nature of the mirror.
type RedisMirror struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMirror creates a mirror backed by the given Redis instance.
func NewRedisMirror(addr, password string, db int, ttl time.Duration) *RedisMirror {
	return &RedisMirror{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Get returns the persisted draft bytes, or ErrNoMirror when the key is
// absent or expired.
func (m *RedisMirror) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := m.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoMirror
	}
	if err != nil {
		return nil, fmt.Errorf("get draft mirror: %w", err)
	}
	return data, nil
}

// Put stores the draft bytes, refreshing the TTL on every write.
func (m *RedisMirror) Put(ctx context.Context, key string, data []byte) error {
	if err := m.client.Set(ctx, key, data, m.ttl).Err(); err != nil {
		return fmt.Errorf("put draft mirror: %w", err)
	}
	return nil
}

// Delete removes the persisted draft.
func (m *RedisMirror) Delete(ctx context.Context, key string) error {
	if err := m.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete draft mirror: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (m *RedisMirror) Close() error {
	return m.client.Close()
}
