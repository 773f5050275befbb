package seat

import (
	"context"

	id "edumatch/pkg/domain"
)

// Store persists seats. Implementations return sentinel.ErrNotFound for
// missing seats; services translate to domain errors.
type Store interface {
	Get(ctx context.Context, seatID id.SeatID) (*Seat, error)
	Put(ctx context.Context, s *Seat) error

	// List returns seats ordered by seat id ascending. An empty institution
	// returns every seat.
	List(ctx context.Context, institution id.InstitutionID) ([]*Seat, error)

	// CountActive counts the institution's non-burned seats. This is the
	// quantity quota enforcement compares against.
	CountActive(ctx context.Context, institution id.InstitutionID) (int, error)

	// FindAssigned returns the seat currently assigned to the candidate, or
	// sentinel.ErrNotFound when the candidate holds none.
	FindAssigned(ctx context.Context, candidate id.CandidateID) (*Seat, error)
}
