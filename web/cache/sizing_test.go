package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/taskmanager/taskmanager/web/table"
)

func TestSizingStoreMeasure(t *testing.T) {
	s := NewSizingStore(time.Hour)
	assert.Empty(t, s.Get("tok", "users"))

	changed, state := s.Measure("tok", "users", map[string]float64{"ID": 72, "name": 180})
	assert.Equal(t, []string{"ID", "name"}, changed)
	assert.Equal(t, table.Sizing{"ID": 72, "name": 180}, state)

	changed, _ = s.Measure("tok", "users", map[string]float64{"ID": 72, "name": 180})
	assert.Empty(t, changed, "identical report writes nothing")

	changed, state = s.Measure("tok", "users", map[string]float64{"name": 181.5})
	assert.Equal(t, []string{"name"}, changed)
	assert.Equal(t, 72.0, state["ID"], "unreported columns keep their width")

	assert.Empty(t, s.Get("other", "users"), "sizing is per session")
	assert.Empty(t, s.Get("tok", "tasks"), "sizing is per table")
}

func TestSizingStoreReturnsCopies(t *testing.T) {
	s := NewSizingStore(time.Hour)
	s.Measure("tok", "users", map[string]float64{"ID": 72})

	got := s.Get("tok", "users")
	got["ID"] = 1
	assert.Equal(t, 72.0, s.Get("tok", "users")["ID"])
}

func TestSizingStoreForget(t *testing.T) {
	s := NewSizingStore(time.Hour)
	s.Measure("tok", "users", map[string]float64{"ID": 72})
	s.Measure("tok2", "users", map[string]float64{"ID": 80})

	s.Forget("tok")
	assert.Empty(t, s.Get("tok", "users"))
	assert.Equal(t, 80.0, s.Get("tok2", "users")["ID"])
}

func TestSizingStoreSlidesExpiry(t *testing.T) {
	s := NewSizingStore(80 * time.Millisecond)
	s.Measure("tok", "users", map[string]float64{"name": 180})

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 180.0, s.Get("tok", "users")["name"])
	time.Sleep(50 * time.Millisecond)
	changed, _ := s.Measure("tok", "users", map[string]float64{"name": 180})
	assert.Empty(t, changed, "a settled table outlives the first ttl while it is in use")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 180.0, s.Get("tok", "users")["name"])

	time.Sleep(120 * time.Millisecond)
	assert.Empty(t, s.Get("tok", "users"), "an unused entry still expires")
}
