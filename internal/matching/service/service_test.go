package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"edumatch/internal/matching"
	"edumatch/internal/platform/keylock"
	"edumatch/internal/score"
	"edumatch/internal/seat"
	id "edumatch/pkg/domain"
	dErrors "edumatch/pkg/domain-errors"
)

// =============================================================================
// Matching Service Test Suite
// =============================================================================
// Justification for unit tests: snapshot construction (available-seat
// filtering, ranking aggregation, institution scoping) happens between the
// stores and the pure engine and is invisible to engine-level tests.

type MatchingServiceSuite struct {
	suite.Suite
	seats   *seat.InMemoryStore
	scores  *score.InMemoryStore
	results *matching.InMemoryResultStore
	service *Service
}

func TestMatchingServiceSuite(t *testing.T) {
	suite.Run(t, new(MatchingServiceSuite))
}

func (s *MatchingServiceSuite) SetupTest() {
	s.seats = seat.NewInMemoryStore()
	s.scores = score.NewInMemoryStore()
	s.results = matching.NewInMemoryResultStore()

	var err error
	s.service, err = New(s.seats, s.scores, s.results, keylock.New(), 2026)
	s.Require().NoError(err)
}

func (s *MatchingServiceSuite) putSeat(seatID id.SeatID, inst id.InstitutionID, state seat.State) {
	s.Require().NoError(s.seats.Put(context.Background(), &seat.Seat{
		ID:          seatID,
		Institution: inst,
		State:       state,
	}))
}

func (s *MatchingServiceSuite) putScore(cand id.CandidateID, subject id.Subject, points, year int, inst id.InstitutionID) {
	s.Require().NoError(s.scores.Put(context.Background(), score.Entry{
		Candidate:   cand,
		Subject:     subject,
		Score:       points,
		Year:        year,
		Institution: inst,
	}))
}

// =============================================================================
// Run Tests
// =============================================================================

func (s *MatchingServiceSuite) TestRun() {
	ctx := context.Background()

	s.putSeat("seat-1", "alpha", seat.StateMinted)
	s.putSeat("seat-2", "alpha", seat.StateMinted)
	s.putScore("cand-a", "math", 60, 2026, "")
	s.putScore("cand-a", "physics", 30, 2026, "")
	s.putScore("cand-b", "math", 80, 2026, "")
	s.putScore("cand-c", "math", 50, 2026, "")

	set, err := s.service.Run(ctx)
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, set.RunID)
	s.Equal(2026, set.Year)
	s.Require().Len(set.Results, 3)

	// cand-a aggregates 90 across subjects and outranks cand-b's 80.
	s.Equal(id.CandidateID("cand-a"), set.Results[0].Candidate)
	s.Equal(90, set.Results[0].Score)
	s.Equal(id.SeatID("seat-1"), set.Results[0].SeatID)

	s.Equal(id.CandidateID("cand-b"), set.Results[1].Candidate)
	s.Equal(id.SeatID("seat-2"), set.Results[1].SeatID)

	s.False(set.Results[2].Admitted)
}

func (s *MatchingServiceSuite) TestRunExcludesUnavailableSeatsAndOtherYears() {
	ctx := context.Background()

	s.putSeat("seat-open", "alpha", seat.StateMinted)
	s.putSeat("seat-taken", "alpha", seat.StateAssigned)
	s.putSeat("seat-gone", "alpha", seat.StateBurned)
	s.putScore("cand-now", "math", 50, 2026, "")
	s.putScore("cand-past", "math", 99, 2025, "")

	set, err := s.service.Run(ctx)
	s.Require().NoError(err)
	s.Require().Len(set.Results, 1)
	s.Equal(id.CandidateID("cand-now"), set.Results[0].Candidate)
	s.Equal(id.SeatID("seat-open"), set.Results[0].SeatID)
}

func (s *MatchingServiceSuite) TestRunScopedRankings() {
	ctx := context.Background()

	s.putSeat("a-1", "alpha", seat.StateMinted)
	s.putSeat("b-1", "beta", seat.StateMinted)
	// Every entry scoped to beta: the candidate only competes there.
	s.putScore("cand-scoped", "math", 95, 2026, "beta")
	s.putScore("cand-open", "math", 40, 2026, "")

	set, err := s.service.Run(ctx)
	s.Require().NoError(err)
	s.Require().Len(set.Results, 2)
	s.Equal(id.InstitutionID("beta"), set.Results[0].Institution)
	s.Equal(id.InstitutionID("alpha"), set.Results[1].Institution)
}

func (s *MatchingServiceSuite) TestRunSupersedesPriorSet() {
	ctx := context.Background()

	s.putSeat("seat-1", "alpha", seat.StateMinted)
	s.putScore("cand-a", "math", 50, 2026, "")

	first, err := s.service.Run(ctx)
	s.Require().NoError(err)

	s.putScore("cand-b", "math", 70, 2026, "")

	second, err := s.service.Run(ctx)
	s.Require().NoError(err)
	s.NotEqual(first.RunID, second.RunID)

	latest, err := s.service.Latest(ctx)
	s.Require().NoError(err)
	s.Equal(second.RunID, latest.RunID)
	s.Len(latest.Results, 2)

	// cand-a lost its seat to the new higher-ranked candidate.
	result, err := s.service.Get(ctx, "cand-a")
	s.Require().NoError(err)
	s.False(result.Admitted)
}

// =============================================================================
// Read Tests
// =============================================================================

func (s *MatchingServiceSuite) TestReadsBeforeFirstRun() {
	ctx := context.Background()

	_, err := s.service.Latest(ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.Get(ctx, "cand-any")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *MatchingServiceSuite) TestGetUnknownCandidate() {
	ctx := context.Background()

	s.putSeat("seat-1", "alpha", seat.StateMinted)
	s.putScore("cand-a", "math", 50, 2026, "")

	_, err := s.service.Run(ctx)
	s.Require().NoError(err)

	_, err = s.service.Get(ctx, "cand-never-scored")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
