package score

import (
	"context"

	id "edumatch/pkg/domain"
)

// Store persists score entries. Put has overwrite semantics on the
// (candidate, subject, year) key.
type Store interface {
	Put(ctx context.Context, e Entry) error

	// ListByCandidate returns the candidate's entries ordered by
	// (subject, year).
	ListByCandidate(ctx context.Context, candidate id.CandidateID) ([]Entry, error)

	// ListByYear returns all entries for an admission cycle ordered by
	// (candidate, subject).
	ListByYear(ctx context.Context, year int) ([]Entry, error)

	// List returns every entry ordered by (candidate, subject).
	List(ctx context.Context) ([]Entry, error)
}
