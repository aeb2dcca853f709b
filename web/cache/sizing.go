package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/web/table"
)

// SizingStore keeps the column sizing state of every table a session has
// rendered. An entry expires once it has been neither read nor changed for the
// session lifetime, so it slides along with the session. Entries are stored as
// JSON so that readers always get a private copy.
type SizingStore struct {
	mu sync.Mutex
	c  *gocache.Cache
}

func NewSizingStore(ttl time.Duration) *SizingStore {
	return &SizingStore{c: gocache.New(ttl, ttl)}
}

func sizingKey(sessionToken, tableID string) string {
	return sessionToken + "/" + tableID
}

// Get returns a copy of the stored sizing, empty when none was reported yet,
// and restarts the entry's expiry.
func (s *SizingStore) Get(sessionToken, tableID string) table.Sizing {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sizingKey(sessionToken, tableID)
	if raw, ok := s.c.Get(key); ok {
		s.c.SetDefault(key, raw)
	}
	return s.load(key)
}

// Measure runs the width synchronizer over the stored state and saves it when
// anything changed. It returns the changed column ids and the resulting state.
func (s *SizingStore) Measure(sessionToken, tableID string, widths map[string]float64) ([]string, table.Sizing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sizingKey(sessionToken, tableID)
	syncer := table.NewSynchronizer(s.load(key))
	changed := syncer.MeasureAll(widths)
	if len(changed) > 0 {
		data, err := json.Marshal(syncer.State())
		if err != nil {
			logger.Warning("failed to encode column sizing: ", err)
			return changed, syncer.State()
		}
		s.c.SetDefault(key, data)
	} else if raw, ok := s.c.Get(key); ok {
		s.c.SetDefault(key, raw)
	}
	return changed, syncer.State()
}

// Forget drops every sizing entry of a session.
func (s *SizingStore) Forget(sessionToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := sessionToken + "/"
	for key := range s.c.Items() {
		if strings.HasPrefix(key, prefix) {
			s.c.Delete(key)
		}
	}
}

func (s *SizingStore) load(key string) table.Sizing {
	raw, ok := s.c.Get(key)
	if !ok {
		return table.Sizing{}
	}
	var sizing table.Sizing
	if err := json.Unmarshal(raw.([]byte), &sizing); err != nil {
		logger.Warning("dropping unreadable column sizing: ", err)
		s.c.Delete(key)
		return table.Sizing{}
	}
	return sizing
}
