package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Counter counts events per key in fixed windows that open with the first event.
type Counter struct {
	c      *gocache.Cache
	window time.Duration
}

func NewCounter(window time.Duration) *Counter {
	return &Counter{c: gocache.New(window, 2*window), window: window}
}

// Incr records one event for key and returns the count in the current window.
func (c *Counter) Incr(key string) int {
	if err := c.c.Add(key, 1, c.window); err == nil {
		return 1
	}
	n, err := c.c.IncrementInt(key, 1)
	if err != nil {
		// the window closed between Add and IncrementInt
		c.c.Set(key, 1, c.window)
		return 1
	}
	return n
}

// ResetAt reports when the window of key closes; zero when there is none.
func (c *Counter) ResetAt(key string) time.Time {
	_, exp, ok := c.c.GetWithExpiration(key)
	if !ok {
		return time.Time{}
	}
	return exp
}

func (c *Counter) Reset(key string) {
	c.c.Delete(key)
}
