// Package history keeps a bounded in-memory bar history per symbol. The
// ring keeps the newest capacity bars; the analysis engine always works on
// a snapshot copy, never on shared slices.
package history

import (
	"sort"
	"sync"

	"stock-advisor/internal/model"
)

// DefaultCapacity bounds per-symbol history when no capacity is configured.
const DefaultCapacity = 500

// Store is a thread-safe collection of per-symbol bar rings.
type Store struct {
	mu       sync.RWMutex
	capacity int
	rings    map[string]*ring
}

type ring struct {
	buf   []model.Bar
	idx   int // next write position
	count int // total bars written
}

// NewStore creates a store keeping at most capacity bars per symbol.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		rings:    make(map[string]*ring, 16),
	}
}

// Append adds one bar to its symbol's ring, evicting the oldest bar once
// the ring is full.
func (s *Store) Append(bar model.Bar) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rings[bar.Symbol]
	if !ok {
		r = &ring{buf: make([]model.Bar, s.capacity)}
		s.rings[bar.Symbol] = r
	}
	r.buf[r.idx] = bar
	r.idx = (r.idx + 1) % s.capacity
	r.count++
}

// Snapshot returns a copy of the symbol's bars in insertion order. Returns
// nil for unknown symbols.
func (s *Store) Snapshot(symbol string) []model.Bar {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rings[symbol]
	if !ok {
		return nil
	}

	n := r.count
	if n > s.capacity {
		n = s.capacity
	}
	out := make([]model.Bar, 0, n)
	start := 0
	if r.count > s.capacity {
		start = r.idx // oldest surviving bar
	}
	for i := 0; i < n; i++ {
		out = append(out, r.buf[(start+i)%s.capacity])
	}
	return out
}

// Len returns the number of retained bars for symbol.
func (s *Store) Len(symbol string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rings[symbol]
	if !ok {
		return 0
	}
	if r.count > s.capacity {
		return s.capacity
	}
	return r.count
}

// Symbols returns the tracked symbols, sorted.
func (s *Store) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.rings))
	for sym := range s.rings {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
