//go:build integration

package matching_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"edumatch/internal/matching"
	"edumatch/pkg/platform/sentinel"
	"edumatch/pkg/testutil/containers"
)

type RedisResultStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *matching.RedisResultStore
}

func TestRedisResultStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisResultStoreSuite))
}

func (s *RedisResultStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = matching.NewRedisResultStore(s.redis.Client)
}

func (s *RedisResultStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisResultStoreSuite) TestLatestBeforeFirstRun() {
	_, err := s.store.Latest(context.Background())
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *RedisResultStoreSuite) TestReplaceRoundTrip() {
	ctx := context.Background()

	set := matching.ResultSet{
		RunID: uuid.New(),
		Year:  2026,
		RanAt: time.Now().UTC().Truncate(time.Millisecond),
		Results: []matching.MatchResult{
			{Candidate: "cand-a", Institution: "inst-1", SeatID: "s-1", Score: 90, Admitted: true},
			{Candidate: "cand-b", Score: 40},
		},
	}
	s.Require().NoError(s.store.Replace(ctx, set))

	latest, err := s.store.Latest(ctx)
	s.Require().NoError(err)
	s.Equal(set.RunID, latest.RunID)
	s.Len(latest.Results, 2)

	admitted, err := s.store.Get(ctx, "cand-a")
	s.Require().NoError(err)
	s.True(admitted.Admitted)
	s.Equal("s-1", admitted.SeatID.String())

	unmatched, err := s.store.Get(ctx, "cand-b")
	s.Require().NoError(err)
	s.False(unmatched.Admitted)
}

func (s *RedisResultStoreSuite) TestReplaceSupersedesIndex() {
	ctx := context.Background()

	first := matching.ResultSet{
		RunID:   uuid.New(),
		Results: []matching.MatchResult{{Candidate: "cand-old", Admitted: true, SeatID: "s-1"}},
	}
	s.Require().NoError(s.store.Replace(ctx, first))

	second := matching.ResultSet{
		RunID:   uuid.New(),
		Results: []matching.MatchResult{{Candidate: "cand-new", Admitted: true, SeatID: "s-1"}},
	}
	s.Require().NoError(s.store.Replace(ctx, second))

	_, err := s.store.Get(ctx, "cand-old")
	s.True(errors.Is(err, sentinel.ErrNotFound))

	latest, err := s.store.Latest(ctx)
	s.Require().NoError(err)
	s.Equal(second.RunID, latest.RunID)
}
