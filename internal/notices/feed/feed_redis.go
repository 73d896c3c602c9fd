package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"portal/internal/notices"
)

const (
	DefaultKey      = "portal:notices"
	DefaultCapacity = 100
)

// RedisFeed stores notices as JSON in a capped Redis list.
type RedisFeed struct {
	client   redis.Cmdable
	key      string
	capacity int64
}

// RedisOption configures a RedisFeed.
type RedisOption func(*RedisFeed)

func WithKey(key string) RedisOption {
	return func(f *RedisFeed) {
		if key != "" {
			f.key = key
		}
	}
}

func WithCapacity(capacity int) RedisOption {
	return func(f *RedisFeed) {
		if capacity > 0 {
			f.capacity = int64(capacity)
		}
	}
}

func NewRedis(client redis.Cmdable, opts ...RedisOption) *RedisFeed {
	f := &RedisFeed{
		client:   client,
		key:      DefaultKey,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *RedisFeed) Publish(ctx context.Context, n notices.Notice) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	_, err = f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, f.key, payload)
		pipe.LTrim(ctx, f.key, -f.capacity, -1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish notice: %w", err)
	}
	return nil
}

func (f *RedisFeed) Recent(ctx context.Context, limit int) ([]notices.Notice, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	raw, err := f.client.LRange(ctx, f.key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read notices: %w", err)
	}
	out := make([]notices.Notice, 0, len(raw))
	for _, r := range raw {
		var n notices.Notice
		if err := json.Unmarshal([]byte(r), &n); err != nil {
			return nil, fmt.Errorf("decode notice: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}
