package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	c := NewCounter(time.Minute)

	assert.Equal(t, 1, c.Incr("a"))
	assert.Equal(t, 2, c.Incr("a"))
	assert.Equal(t, 1, c.Incr("b"))
	assert.False(t, c.ResetAt("a").IsZero())
	assert.True(t, c.ResetAt("missing").IsZero())

	c.Reset("a")
	assert.Equal(t, 1, c.Incr("a"))
}

func TestCounterWindow(t *testing.T) {
	c := NewCounter(20 * time.Millisecond)
	c.Incr("k")
	c.Incr("k")
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 1, c.Incr("k"))
}
