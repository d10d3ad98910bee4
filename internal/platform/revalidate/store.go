// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package revalidate keeps rendered page responses fresh for a fixed interval.

A response is served from the store until its entry expires; the next
request after that regenerates it from upstream. This is the server-side
equivalent of incremental static regeneration with a constant window.

Stores:

  - [MemoryStore] for single-instance deployments and tests.
  - [RedisStore] when several instances should share one cache.
*/
package revalidate

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// ErrMiss is returned by a [Store] when a key is absent or expired.
var ErrMiss = errors.New("revalidate: cache miss")

// Entry is one stored response.
type Entry struct {
	Status      int       `json:"status"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	StoredAt    time.Time `json:"stored_at"`
}

// Store persists entries for a bounded time.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// # Memory Store

type memoryItem struct {
	entry   Entry
	expires time.Time
}

// MemoryStore is a process-local [Store].
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

// Get implements [Store]. Expired entries are evicted on read.
func (store *MemoryStore) Get(_ context.Context, key string) (Entry, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	item, ok := store.items[key]
	if !ok {
		return Entry{}, ErrMiss
	}
	if !store.now().Before(item.expires) {
		delete(store.items, key)
		return Entry{}, ErrMiss
	}
	return item.entry, nil
}

// Set implements [Store].
func (store *MemoryStore) Set(_ context.Context, key string, entry Entry, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.items[key] = memoryItem{entry: entry, expires: store.now().Add(ttl)}
	return nil
}

// Ping implements [Store]; memory is always reachable.
func (store *MemoryStore) Ping(context.Context) error { return nil }

// Len returns the number of held entries, expired ones included.
func (store *MemoryStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.items)
}

// cacheable reports whether a response may be stored.
func cacheable(status int) bool {
	return status == http.StatusOK
}
