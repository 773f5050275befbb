package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "edumatch/pkg/domain"
)

func snapshotFixture() Snapshot {
	return Snapshot{
		Year: 2026,
		Seats: []SeatSlot{
			{ID: "a-2", Institution: "alpha"},
			{ID: "a-1", Institution: "alpha"},
			{ID: "b-1", Institution: "beta"},
		},
		Rankings: []CandidateRanking{
			{Candidate: "cand-low", Aggregate: 50},
			{Candidate: "cand-mid", Aggregate: 70},
			{Candidate: "cand-top", Aggregate: 90},
		},
	}
}

func TestRunGreedyPlacement(t *testing.T) {
	results := Run(snapshotFixture())
	require.Len(t, results, 3)

	// Highest aggregate first, lowest seat id at the first institution.
	assert.Equal(t, id.CandidateID("cand-top"), results[0].Candidate)
	assert.Equal(t, id.SeatID("a-1"), results[0].SeatID)
	assert.True(t, results[0].Admitted)

	assert.Equal(t, id.CandidateID("cand-mid"), results[1].Candidate)
	assert.Equal(t, id.SeatID("a-2"), results[1].SeatID)

	assert.Equal(t, id.CandidateID("cand-low"), results[2].Candidate)
	assert.Equal(t, id.SeatID("b-1"), results[2].SeatID)
}

func TestRunDeterministic(t *testing.T) {
	first := Run(snapshotFixture())
	second := Run(snapshotFixture())
	assert.Equal(t, first, second)
}

func TestRunMoreCandidatesThanSeats(t *testing.T) {
	snap := snapshotFixture()
	snap.Rankings = append(snap.Rankings, CandidateRanking{Candidate: "cand-extra", Aggregate: 10})

	results := Run(snap)
	require.Len(t, results, 4)

	admitted := 0
	for _, r := range results {
		if r.Admitted {
			admitted++
		}
	}
	assert.Equal(t, 3, admitted)

	last := results[3]
	assert.Equal(t, id.CandidateID("cand-extra"), last.Candidate)
	assert.False(t, last.Admitted)
	assert.Empty(t, last.SeatID)
	assert.Empty(t, last.Institution)
}

func TestRunTieBreakByCandidate(t *testing.T) {
	snap := Snapshot{
		Seats: []SeatSlot{{ID: "s-1", Institution: "alpha"}},
		Rankings: []CandidateRanking{
			{Candidate: "zeta", Aggregate: 80},
			{Candidate: "alpha", Aggregate: 80},
		},
	}

	results := Run(snap)
	require.Len(t, results, 2)
	assert.Equal(t, id.CandidateID("alpha"), results[0].Candidate)
	assert.True(t, results[0].Admitted)
	assert.False(t, results[1].Admitted)
}

func TestRunInstitutionPriority(t *testing.T) {
	snap := Snapshot{
		Seats: []SeatSlot{
			{ID: "a-1", Institution: "alpha"},
			{ID: "b-1", Institution: "beta"},
		},
		Rankings: []CandidateRanking{{Candidate: "cand-1", Aggregate: 60}},
		Priority: []id.InstitutionID{"beta"},
	}

	results := Run(snap)
	require.Len(t, results, 1)
	assert.Equal(t, id.InstitutionID("beta"), results[0].Institution)
}

func TestRunScopedCandidates(t *testing.T) {
	snap := Snapshot{
		Seats: []SeatSlot{
			{ID: "a-1", Institution: "alpha"},
			{ID: "b-1", Institution: "beta"},
		},
		Rankings: []CandidateRanking{
			// Higher aggregate but only targets beta; alpha's seat must go to
			// the lower-ranked unscoped candidate.
			{Candidate: "cand-scoped", Aggregate: 95, Targets: []id.InstitutionID{"beta"}},
			{Candidate: "cand-open", Aggregate: 40},
		},
	}

	results := Run(snap)
	require.Len(t, results, 2)
	assert.Equal(t, id.InstitutionID("beta"), results[0].Institution)
	assert.Equal(t, id.InstitutionID("alpha"), results[1].Institution)
}

func TestRunScopedCandidateUnmatchedWhenTargetFull(t *testing.T) {
	snap := Snapshot{
		Seats: []SeatSlot{{ID: "a-1", Institution: "alpha"}},
		Rankings: []CandidateRanking{
			{Candidate: "cand-scoped", Aggregate: 95, Targets: []id.InstitutionID{"beta"}},
		},
	}

	results := Run(snap)
	require.Len(t, results, 1)
	assert.False(t, results[0].Admitted)
}

func TestRunEmptySnapshot(t *testing.T) {
	assert.Empty(t, Run(Snapshot{}))

	noSeats := Run(Snapshot{Rankings: []CandidateRanking{{Candidate: "cand-1", Aggregate: 10}}})
	require.Len(t, noSeats, 1)
	assert.False(t, noSeats[0].Admitted)
}
