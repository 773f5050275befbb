package matching

import (
	"time"

	id "edumatch/pkg/domain"

	"github.com/google/uuid"
)

// MatchResult is one candidate's outcome from a matching run. Results are
// immutable once produced; only assignment confirmation mutates seat state
// afterwards.
type MatchResult struct {
	Candidate   id.CandidateID   `json:"candidate_id"`
	Institution id.InstitutionID `json:"institution_id,omitempty"`
	SeatID      id.SeatID        `json:"seat_id,omitempty"`
	Score       int              `json:"score"`
	Admitted    bool             `json:"admitted"`
}

// ResultSet is the full output of one run. A new run supersedes the previous
// set atomically; there is no partial-result visibility.
type ResultSet struct {
	RunID   uuid.UUID     `json:"run_id"`
	Year    int           `json:"year"`
	RanAt   time.Time     `json:"ran_at"`
	Results []MatchResult `json:"results"`
}

// CandidateRanking is a ranked candidate inside a snapshot.
type CandidateRanking struct {
	Candidate id.CandidateID
	Aggregate int
	// Targets restricts the candidate to specific institutions when their
	// score entries are institution-scoped. Empty means the shared pool.
	Targets []id.InstitutionID
}

// Snapshot is the consistent read the engine computes over: available
// (minted) seats, ranked candidates, and the configured institution priority.
// It is fully detached from live stores, so the engine can run without locks.
type Snapshot struct {
	Year     int
	Seats    []SeatSlot
	Rankings []CandidateRanking
	Priority []id.InstitutionID
}

// SeatSlot is the engine's view of one available seat.
type SeatSlot struct {
	ID          id.SeatID
	Institution id.InstitutionID
}
