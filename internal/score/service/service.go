package service

import (
	"context"
	"fmt"
	"log/slog"

	"edumatch/internal/platform/keylock"
	"edumatch/internal/score"
	id "edumatch/pkg/domain"
	dErrors "edumatch/pkg/domain-errors"
	audit "edumatch/pkg/platform/audit"
	"edumatch/pkg/requestcontext"
)

// Service owns the score ledger. Entries are append-or-overwrite only; the
// ledger never forgets a candidate.
type Service struct {
	store     score.Store
	locks     *keylock.Keyed
	maxScore  int
	publisher audit.Publisher
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithMaxScore overrides the default 0-100 accepted range's upper bound.
func WithMaxScore(max int) Option {
	return func(s *Service) { s.maxScore = max }
}

func New(store score.Store, locks *keylock.Keyed, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("score store is required")
	}
	if locks == nil {
		return nil, fmt.Errorf("keyed locks are required")
	}

	svc := &Service{
		store:     store,
		locks:     locks,
		maxScore:  100,
		publisher: audit.NopPublisher{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Push records a score, overwriting any existing entry for the same
// (candidate, subject, year).
func (s *Service) Push(ctx context.Context, candidate id.CandidateID, subject id.Subject, points, year int, institution id.InstitutionID) (*score.Entry, error) {
	if candidate.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "candidate_hash is required")
	}
	if subject == "" {
		subject = id.SubjectComposite
	}
	if points < 0 || points > s.maxScore {
		return nil, dErrors.Newf(dErrors.CodeInvalidScore,
			"score %d outside valid range [0, %d]", points, s.maxScore)
	}

	// Score pushes key their lock on the candidate: overwrites of the same
	// entry serialize, and the matching gate in keylock still excludes them
	// during snapshot reads.
	unlock := s.locks.Lock("score:" + candidate.String())
	defer unlock()

	entry := score.Entry{
		Candidate:   candidate,
		Subject:     subject,
		Score:       points,
		Year:        year,
		Institution: institution,
		UpdatedAt:   requestcontext.Now(ctx),
	}
	if err := s.store.Put(ctx, entry); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store score")
	}

	s.publisher.Publish(ctx, audit.Event{
		Category:    audit.EventScorePushed.Category(),
		Timestamp:   entry.UpdatedAt,
		Action:      string(audit.EventScorePushed),
		Candidate:   candidate,
		Institution: institution,
		ActorID:     requestcontext.ActorID(ctx),
		RequestID:   requestcontext.RequestID(ctx),
		Detail:      fmt.Sprintf("subject=%s year=%d score=%d", subject, year, points),
	})

	s.logger.InfoContext(ctx, "score pushed",
		"candidate_id", candidate,
		"subject", subject,
		"year", year,
		"score", points,
	)
	return &entry, nil
}

// Aggregate sums the candidate's subject scores for the cycle year.
// Candidates with no entries aggregate to zero and cannot be admitted.
func (s *Service) Aggregate(ctx context.Context, candidate id.CandidateID, year int) (int, error) {
	entries, err := s.store.ListByCandidate(ctx, candidate)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list scores")
	}
	total := 0
	for _, e := range entries {
		if e.Year == year {
			total += e.Score
		}
	}
	return total, nil
}

// Get returns the candidate's entries ordered by (subject, year).
func (s *Service) Get(ctx context.Context, candidate id.CandidateID) ([]score.Entry, error) {
	entries, err := s.store.ListByCandidate(ctx, candidate)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list scores")
	}
	if len(entries) == 0 {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no scores recorded for candidate %s", candidate)
	}
	return entries, nil
}

// List returns every entry ordered by (candidate, subject).
func (s *Service) List(ctx context.Context) ([]score.Entry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list scores")
	}
	return entries, nil
}
