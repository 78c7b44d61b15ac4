package store

import (
	"fmt"
	"sync"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// MemoryStore keeps the ordered match list in memory. The simulator is the only
// writer; HTTP handlers read copies.
type MemoryStore struct {
	mu      sync.RWMutex
	matches []matches.Match
	index   map[int]int
}

// NewMemoryStore constructs a store holding copies of the provided matches.
func NewMemoryStore(seed []matches.Match) *MemoryStore {
	s := &MemoryStore{}
	s.SetMatches(seed)
	return s
}

// Len returns the number of matches held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// ListMatches returns copies of all matches in seed order.
func (s *MemoryStore) ListMatches() []matches.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]matches.Match, 0, len(s.matches))
	for i := range s.matches {
		result = append(result, s.matches[i].Clone())
	}
	return result
}

// GetMatch retrieves a copy of a match by ID.
func (s *MemoryStore) GetMatch(id int) (matches.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return matches.Match{}, false
	}
	return s.matches[i].Clone(), true
}

// SetMatches replaces the list with copies of the provided matches.
func (s *MemoryStore) SetMatches(list []matches.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches = make([]matches.Match, 0, len(list))
	s.index = make(map[int]int, len(list))
	for i := range list {
		s.index[list[i].ID] = len(s.matches)
		s.matches = append(s.matches, list[i].Clone())
	}
}

// Mutate runs fn against the match at position i while holding the write lock.
// Changes are kept only when fn returns nil.
func (s *MemoryStore) Mutate(i int, fn func(m *matches.Match) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.matches) {
		return fmt.Errorf("match index %d out of range [0,%d)", i, len(s.matches))
	}
	working := s.matches[i].Clone()
	if err := fn(&working); err != nil {
		return err
	}
	s.matches[i] = working
	return nil
}
