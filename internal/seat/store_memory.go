package seat

import (
	"context"
	"sort"
	"sync"

	id "edumatch/pkg/domain"
	"edumatch/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	seats map[id.SeatID]*Seat
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{seats: make(map[id.SeatID]*Seat)}
}

func (s *InMemoryStore) Get(_ context.Context, seatID id.SeatID) (*Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if seat, ok := s.seats[seatID]; ok {
		return seat.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Put(_ context.Context, seat *Seat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seats[seat.ID] = seat.Clone()
	return nil
}

func (s *InMemoryStore) List(_ context.Context, institution id.InstitutionID) ([]*Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		if !institution.IsZero() && seat.Institution != institution {
			continue
		}
		out = append(out, seat.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) CountActive(_ context.Context, institution id.InstitutionID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, seat := range s.seats {
		if seat.Institution == institution && seat.State != StateBurned {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) FindAssigned(_ context.Context, candidate id.CandidateID) (*Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, seat := range s.seats {
		if seat.State == StateAssigned && seat.Owner == candidate {
			return seat.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}
