package throttle

import (
	"sync"
	"time"
)

type entry struct {
	key string
	ts  time.Time
}

// Suppressor rate-limits repeated diagnostics: each distinct key passes once
// per ttl window. Bounded by capacity so a churning key set cannot grow the
// map without limit.
type Suppressor struct {
	mu       sync.Mutex
	items    map[string]time.Time
	order    []entry
	capacity int
	ttl      time.Duration
}

// New creates a suppressor with the provided capacity and ttl.
func New(capacity int, ttl time.Duration) *Suppressor {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Suppressor{
		items:    make(map[string]time.Time, capacity),
		order:    make([]entry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Allow reports whether the key may pass, and records it when it does. A key
// seen inside the ttl window is suppressed.
func (s *Suppressor) Allow(key string) bool {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ts, ok := s.items[key]; ok && now.Sub(ts) <= s.ttl {
		return false
	}

	s.items[key] = now
	s.order = append(s.order, entry{key: key, ts: now})
	s.compact(now)
	return true
}

func (s *Suppressor) compact(now time.Time) {
	cutoff := now.Add(-s.ttl)

	for len(s.order) > 0 && (len(s.items) > s.capacity || s.order[0].ts.Before(cutoff)) {
		oldest := s.order[0]
		s.order = s.order[1:]

		if ts, ok := s.items[oldest.key]; ok && ts == oldest.ts {
			delete(s.items, oldest.key)
		}
	}
}
