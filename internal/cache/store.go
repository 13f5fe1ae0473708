package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Entry is a stored result with its absolute expiry.
type Entry struct {
	Value     any
	ExpiresAt time.Time
}

// Store persists computed entries. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
}

// MemoryStore is an in-process Store bounded by entry count and TTL.
type MemoryStore struct {
	lru *expirable.LRU[string, Entry]
}

// NewMemoryStore returns a store holding at most size entries for at most ttl each.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{lru: expirable.NewLRU[string, Entry](size, nil, ttl)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	e, ok := m.lru.Get(key)
	return e, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, e Entry) error {
	m.lru.Add(key, e)
	return nil
}

// Len reports the number of live entries.
func (m *MemoryStore) Len() int { return m.lru.Len() }
