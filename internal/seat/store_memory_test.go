package seat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edumatch/pkg/platform/sentinel"
)

func TestInMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))

	require.NoError(t, store.Put(ctx, &Seat{ID: "s-1", Institution: "inst", State: StateMinted}))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, StateMinted, got.State)

	// Mutating the returned copy must not touch store state.
	got.State = StateBurned
	again, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, StateMinted, again.State)
}

func TestInMemoryStoreListOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	require.NoError(t, store.Put(ctx, &Seat{ID: "s-3", Institution: "a", State: StateMinted}))
	require.NoError(t, store.Put(ctx, &Seat{ID: "s-1", Institution: "a", State: StateMinted}))
	require.NoError(t, store.Put(ctx, &Seat{ID: "s-2", Institution: "b", State: StateMinted}))

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "s-1", all[0].ID.String())
	assert.Equal(t, "s-2", all[1].ID.String())
	assert.Equal(t, "s-3", all[2].ID.String())

	filtered, err := store.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
}

func TestInMemoryStoreCountActive(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	require.NoError(t, store.Put(ctx, &Seat{ID: "s-1", Institution: "a", State: StateMinted}))
	require.NoError(t, store.Put(ctx, &Seat{ID: "s-2", Institution: "a", State: StateAssigned, Owner: "cand"}))
	require.NoError(t, store.Put(ctx, &Seat{ID: "s-3", Institution: "a", State: StateBurned}))

	active, err := store.CountActive(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, active)
}

func TestInMemoryStoreFindAssigned(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	require.NoError(t, store.Put(ctx, &Seat{ID: "s-1", Institution: "a", State: StateAssigned, Owner: "cand"}))
	// Burned seats keep their owner but no longer count as held.
	require.NoError(t, store.Put(ctx, &Seat{ID: "s-2", Institution: "a", State: StateBurned, Owner: "cand-gone"}))

	held, err := store.FindAssigned(ctx, "cand")
	require.NoError(t, err)
	assert.Equal(t, "s-1", held.ID.String())

	_, err = store.FindAssigned(ctx, "cand-gone")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}
