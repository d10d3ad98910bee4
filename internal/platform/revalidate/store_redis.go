// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revalidate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/atelier/internal/platform/constants"
)

// RedisStore implements [Store] using Redis, shared by every instance.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store under [constants.RedisPrefixPage].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: constants.RedisPrefixPage}
}

/*
Get retrieves the entry stored under key.

Returns:
  - Entry: The stored response
  - error: [ErrMiss] when absent or expired, connectivity errors otherwise
*/
func (store *RedisStore) Get(ctx context.Context, key string) (Entry, error) {
	data, err := store.client.Get(ctx, store.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, ErrMiss
		}
		return Entry{}, fmt.Errorf("redis_page_get_failed: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, fmt.Errorf("redis_page_decode_failed: %w", err)
	}
	return entry, nil
}

/*
Set stores an entry; Redis expires it after ttl.

Parameters:
  - key: Request path and query
  - entry: Response to store
  - ttl: Freshness interval
*/
func (store *RedisStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redis_page_encode_failed: %w", err)
	}

	if err := store.client.Set(ctx, store.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis_page_set_failed: %w", err)
	}
	return nil
}

// Ping implements [Store].
func (store *RedisStore) Ping(ctx context.Context) error {
	return store.client.Ping(ctx).Err()
}
