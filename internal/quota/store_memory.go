package quota

import (
	"context"
	"sort"
	"sync"

	id "edumatch/pkg/domain"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	quotas map[id.InstitutionID]Quota
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{quotas: make(map[id.InstitutionID]Quota)}
}

func (s *InMemoryStore) Set(_ context.Context, q Quota) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotas[q.Institution] = q
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, institution id.InstitutionID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if q, ok := s.quotas[institution]; ok {
		return q.SeatCount, nil
	}
	return 0, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Quota, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Quota, 0, len(s.quotas))
	for _, q := range s.quotas {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Institution < out[j].Institution })
	return out, nil
}
