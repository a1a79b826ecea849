package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore is the in-process fallback used when redis is disabled.
// Entries share one TTL fixed at construction; per-call ttl is ignored.
type MemoryStore struct {
	lru *expirable.LRU[string, []byte]
}

func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = 128
	}
	return &MemoryStore{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := s.lru.Get(key)
	return val, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.lru.Add(key, value)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.lru.Remove(k)
	}
	return nil
}
