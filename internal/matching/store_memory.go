package matching

import (
	"context"
	"sync"

	id "edumatch/pkg/domain"
	"edumatch/pkg/platform/sentinel"
)

type InMemoryResultStore struct {
	mu      sync.RWMutex
	current *ResultSet
	byCand  map[id.CandidateID]MatchResult
}

func NewInMemoryResultStore() *InMemoryResultStore {
	return &InMemoryResultStore{byCand: make(map[id.CandidateID]MatchResult)}
}

func (s *InMemoryResultStore) Replace(_ context.Context, set ResultSet) error {
	byCand := make(map[id.CandidateID]MatchResult, len(set.Results))
	for _, r := range set.Results {
		byCand[r.Candidate] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &set
	s.byCand = byCand
	return nil
}

func (s *InMemoryResultStore) Latest(_ context.Context) (ResultSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ResultSet{}, sentinel.ErrNotFound
	}
	set := *s.current
	set.Results = append([]MatchResult{}, s.current.Results...)
	return set, nil
}

func (s *InMemoryResultStore) Get(_ context.Context, candidate id.CandidateID) (MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.byCand[candidate]; ok {
		return r, nil
	}
	return MatchResult{}, sentinel.ErrNotFound
}
