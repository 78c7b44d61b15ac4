package matches

import (
	"fmt"

	domain "github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// Store defines the read side of the match list plus wholesale replacement.
type Store interface {
	ListMatches() []domain.Match
	GetMatch(id int) (domain.Match, bool)
	SetMatches(list []domain.Match)
}

// Service coordinates scoreboard reads over a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Matches returns every match in seed order.
func (s *Service) Matches() []domain.Match {
	return s.store.ListMatches()
}

// MatchByID returns a single match or ErrMatchNotFound.
func (s *Service) MatchByID(id int) (domain.Match, error) {
	m, ok := s.store.GetMatch(id)
	if !ok {
		return domain.Match{}, fmt.Errorf("match %d: %w", id, domain.ErrMatchNotFound)
	}
	return m, nil
}

// Filter returns matches with the given sport and status. Empty values match anything.
func (s *Service) Filter(sport domain.Sport, status domain.Status) []domain.Match {
	all := s.store.ListMatches()
	out := make([]domain.Match, 0, len(all))
	for _, m := range all {
		if sport != "" && m.Sport != sport {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ReplaceMatches swaps the whole match list.
func (s *Service) ReplaceMatches(list []domain.Match) {
	s.store.SetMatches(list)
}
