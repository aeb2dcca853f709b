package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a typed view over an in-process go-cache instance.
type Memory[V any] struct {
	c *gocache.Cache
}

func NewMemory[V any](ttl, cleanupInterval time.Duration) *Memory[V] {
	return &Memory[V]{c: gocache.New(ttl, cleanupInterval)}
}

func (m *Memory[V]) Get(key string) (V, bool) {
	var zero V
	v, ok := m.c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(V)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Set stores v under the cache's default TTL.
func (m *Memory[V]) Set(key string, v V) {
	m.c.SetDefault(key, v)
}

func (m *Memory[V]) Delete(key string) {
	m.c.Delete(key)
}

// DeleteFunc removes every unexpired entry for which match is true and
// returns how many were removed.
func (m *Memory[V]) DeleteFunc(match func(key string, v V) bool) int {
	n := 0
	for key, item := range m.c.Items() {
		v, ok := item.Object.(V)
		if ok && match(key, v) {
			m.c.Delete(key)
			n++
		}
	}
	return n
}

func (m *Memory[V]) Len() int {
	return m.c.ItemCount()
}

func (m *Memory[V]) Flush() {
	m.c.Flush()
}
