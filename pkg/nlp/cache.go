package nlp

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache maps exact input text to an immutable classification value. A miss
// and a backend failure look the same to the caller.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V)
	Len() int
}

type MemoryCache[V any] struct {
	lru *expirable.LRU[string, V]
}

// NewMemoryCache builds an in-process cache. size 0 keeps every entry and ttl 0
// never expires, which is the process-lifetime default.
func NewMemoryCache[V any](size int, ttl time.Duration) *MemoryCache[V] {
	return &MemoryCache[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

func (c *MemoryCache[V]) Get(_ context.Context, key string) (V, bool) {
	return c.lru.Get(key)
}

func (c *MemoryCache[V]) Set(_ context.Context, key string, value V) {
	c.lru.Add(key, value)
}

func (c *MemoryCache[V]) Len() int {
	return c.lru.Len()
}
