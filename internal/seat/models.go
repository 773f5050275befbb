package seat

import (
	"time"

	id "edumatch/pkg/domain"
)

// State is the seat lifecycle state. Transitions are one-way:
// Minted -> Assigned (confirmation), Minted -> Burned (explicit burn),
// Assigned -> Burned (vacate). Burned is terminal.
type State string

const (
	StateMinted   State = "minted"
	StateAssigned State = "assigned"
	StateBurned   State = "burned"
)

// IsValid checks the state is one of the supported enum values.
func (s State) IsValid() bool {
	switch s {
	case StateMinted, StateAssigned, StateBurned:
		return true
	}
	return false
}

// Seat is one admission slot. Owner back-references the candidate; it is set
// only on assignment and frozen at its last value once the seat burns, so the
// trail of a vacated admission stays auditable.
type Seat struct {
	ID          id.SeatID        `json:"id"`
	Institution id.InstitutionID `json:"institution_id"`
	Owner       id.CandidateID   `json:"owner,omitempty"`
	State       State            `json:"state"`
	MintedAt    time.Time        `json:"minted_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Available reports whether the seat can receive an assignment.
func (s *Seat) Available() bool {
	return s.State == StateMinted
}

// Clone returns a copy so store internals never leak mutable references.
func (s *Seat) Clone() *Seat {
	c := *s
	return &c
}
