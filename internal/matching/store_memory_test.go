package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edumatch/pkg/platform/sentinel"
)

func TestInMemoryResultStoreReplace(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryResultStore()

	_, err := store.Latest(ctx)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))

	first := ResultSet{
		RunID: uuid.New(),
		Results: []MatchResult{
			{Candidate: "cand-a", SeatID: "s-1", Institution: "inst", Admitted: true},
		},
	}
	require.NoError(t, store.Replace(ctx, first))

	got, err := store.Get(ctx, "cand-a")
	require.NoError(t, err)
	assert.True(t, got.Admitted)

	// A new set fully supersedes the old one, including its candidate index.
	second := ResultSet{
		RunID: uuid.New(),
		Results: []MatchResult{
			{Candidate: "cand-b", SeatID: "s-1", Institution: "inst", Admitted: true},
		},
	}
	require.NoError(t, store.Replace(ctx, second))

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.RunID, latest.RunID)

	_, err = store.Get(ctx, "cand-a")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}
