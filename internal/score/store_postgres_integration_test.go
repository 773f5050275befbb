//go:build integration

package score_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"edumatch/internal/score"
	id "edumatch/pkg/domain"
	"edumatch/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *score.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), "../../migrations/0001_init.sql")
	s.store = score.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "scores"))
}

func (s *PostgresStoreSuite) putEntry(cand, subject string, points, year int, inst string) {
	s.Require().NoError(s.store.Put(context.Background(), score.Entry{
		Candidate:   id.CandidateID(cand),
		Subject:     id.Subject(subject),
		Score:       points,
		Year:        year,
		Institution: id.InstitutionID(inst),
		UpdatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}))
}

func (s *PostgresStoreSuite) TestPutOverwritesOnKey() {
	ctx := context.Background()

	s.putEntry("cand-1", "math", 50, 2026, "")
	s.putEntry("cand-1", "math", 75, 2026, "inst-late")

	entries, err := s.store.ListByCandidate(ctx, "cand-1")
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(75, entries[0].Score)
	s.Equal("inst-late", entries[0].Institution.String())
}

func (s *PostgresStoreSuite) TestDistinctKeysCoexist() {
	ctx := context.Background()

	s.putEntry("cand-1", "math", 50, 2026, "")
	s.putEntry("cand-1", "math", 60, 2025, "")
	s.putEntry("cand-1", "physics", 70, 2026, "")

	entries, err := s.store.ListByCandidate(ctx, "cand-1")
	s.Require().NoError(err)
	s.Len(entries, 3)
}

func (s *PostgresStoreSuite) TestListByYearOrdering() {
	ctx := context.Background()

	s.putEntry("cand-b", "math", 50, 2026, "")
	s.putEntry("cand-a", "math", 60, 2026, "")
	s.putEntry("cand-a", "math", 99, 2025, "")

	entries, err := s.store.ListByYear(ctx, 2026)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("cand-a", entries[0].Candidate.String())
	s.Equal("cand-b", entries[1].Candidate.String())
}

func (s *PostgresStoreSuite) TestNullInstitutionRoundTrip() {
	ctx := context.Background()

	s.putEntry("cand-null", "math", 40, 2026, "")

	entries, err := s.store.ListByCandidate(ctx, "cand-null")
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.True(entries[0].Institution.IsZero())
}
