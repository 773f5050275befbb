package matching

import (
	"context"

	id "edumatch/pkg/domain"
)

// ResultStore holds the latest published result set. Replace is atomic: a
// reader sees either the prior complete set or the new complete set, never a
// mixture.
type ResultStore interface {
	Replace(ctx context.Context, set ResultSet) error

	// Latest returns the current set, or sentinel.ErrNotFound before the
	// first run.
	Latest(ctx context.Context) (ResultSet, error)

	// Get returns one candidate's result from the current set, or
	// sentinel.ErrNotFound.
	Get(ctx context.Context, candidate id.CandidateID) (MatchResult, error)
}
