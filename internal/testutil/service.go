package testutil

import (
	appmatches "github.com/preston-bernstein/live-scores-service/internal/app/matches"
	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/store"
)

// NewServiceWithMatches builds a match service backed by an in-memory store preloaded with list.
func NewServiceWithMatches(list []matches.Match) (*appmatches.Service, *store.MemoryStore) {
	ms := store.NewMemoryStore(list)
	return appmatches.NewService(ms), ms
}
