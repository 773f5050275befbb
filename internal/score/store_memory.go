package score

import (
	"context"
	"sort"
	"sync"

	id "edumatch/pkg/domain"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[Key]Entry)}
}

func (s *InMemoryStore) Put(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Key()] = e
	return nil
}

func (s *InMemoryStore) ListByCandidate(_ context.Context, candidate id.CandidateID) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.entries {
		if e.Candidate == candidate {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Year < out[j].Year
	})
	return out, nil
}

func (s *InMemoryStore) ListByYear(_ context.Context, year int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.entries {
		if e.Year == year {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Candidate != entries[j].Candidate {
			return entries[i].Candidate < entries[j].Candidate
		}
		return entries[i].Subject < entries[j].Subject
	})
}
