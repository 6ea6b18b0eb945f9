package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	value    []byte
	storedAt time.Time
}

// Memory is the in-process Store backend: a flat string-keyed map with
// per-entry timestamps. Expiry is checked on read only and stale
// entries are never purged — memory grows with the number of distinct
// keys ever requested, which is acceptable for the low-cardinality
// page/juz/surah key space. Concurrent misses on the same key may both
// compute; the last writer wins, which is harmless because computed
// values are pure reads of immutable reference data.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock injects the clock, letting tests control expiry.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     now,
	}
}

func (m *Memory) GetOrCompute(_ context.Context, key string, ttl time.Duration, dest any, compute func() (any, error)) error {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if ok && m.now().Sub(e.storedAt) < ttl {
		return json.Unmarshal(e.value, dest)
	}

	value, err := compute()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}

	m.mu.Lock()
	m.entries[key] = entry{value: raw, storedAt: m.now()}
	m.mu.Unlock()

	return json.Unmarshal(raw, dest)
}

// Len reports the number of entries currently held, fresh or stale.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
