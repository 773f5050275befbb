package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"edumatch/internal/matching"
	"edumatch/internal/matching/metrics"
	"edumatch/internal/platform/keylock"
	"edumatch/internal/score"
	"edumatch/internal/seat"
	id "edumatch/pkg/domain"
	dErrors "edumatch/pkg/domain-errors"
	audit "edumatch/pkg/platform/audit"
	"edumatch/pkg/platform/sentinel"
	"edumatch/pkg/requestcontext"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

var tracer = otel.Tracer("edumatch/matching")

// Service triggers matching runs. A run reads a consistent snapshot under the
// registry's exclusive gate, computes the assignment with the pure engine,
// and atomically publishes the result set. It proposes only: confirming an
// assignment is a separate operator step.
type Service struct {
	seats     seat.Store
	scores    score.Store
	results   matching.ResultStore
	locks     *keylock.Keyed
	year      int
	priority  []id.InstitutionID
	group     singleflight.Group
	publisher audit.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithInstitutionPriority sets the configured institution ranking used for
// candidates competing in the shared pool.
func WithInstitutionPriority(priority []id.InstitutionID) Option {
	return func(s *Service) { s.priority = priority }
}

func New(seats seat.Store, scores score.Store, results matching.ResultStore, locks *keylock.Keyed, year int, opts ...Option) (*Service, error) {
	if seats == nil {
		return nil, fmt.Errorf("seat store is required")
	}
	if scores == nil {
		return nil, fmt.Errorf("score store is required")
	}
	if results == nil {
		return nil, fmt.Errorf("result store is required")
	}
	if locks == nil {
		return nil, fmt.Errorf("keyed locks are required")
	}

	svc := &Service{
		seats:     seats,
		scores:    scores,
		results:   results,
		locks:     locks,
		year:      year,
		publisher: audit.NopPublisher{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Run executes one matching run and publishes its result set. Concurrent
// triggers are deduplicated: they share the run already in flight rather
// than queueing redundant recomputation of the same snapshot.
func (s *Service) Run(ctx context.Context) (*matching.ResultSet, error) {
	v, err, _ := s.group.Do("run", func() (any, error) {
		return s.run(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*matching.ResultSet), nil
}

func (s *Service) run(ctx context.Context) (*matching.ResultSet, error) {
	ctx, span := tracer.Start(ctx, "matching.run", trace.WithAttributes(
		attribute.Int("cycle_year", s.year),
	))
	defer span.End()

	start := time.Now()

	snap, err := s.snapshot(ctx)
	if err != nil {
		s.metrics.IncrementFailed()
		s.auditRun(ctx, audit.EventMatchingFailed, uuid.Nil, err.Error())
		return nil, err
	}

	// The engine runs on the detached snapshot; locks were already released.
	results := matching.Run(snap)

	set := matching.ResultSet{
		RunID:   uuid.New(),
		Year:    s.year,
		RanAt:   requestcontext.Now(ctx),
		Results: results,
	}
	if err := s.results.Replace(ctx, set); err != nil {
		// Publish failed: the prior result set stays untouched.
		s.metrics.IncrementFailed()
		s.auditRun(ctx, audit.EventMatchingFailed, set.RunID, err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to publish match results")
	}

	admitted := 0
	for _, r := range results {
		if r.Admitted {
			admitted++
		}
	}
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	s.metrics.ObserveRun(durationMs, admitted, len(results)-admitted)
	span.SetAttributes(
		attribute.Int("candidates", len(results)),
		attribute.Int("admitted", admitted),
	)

	s.auditRun(ctx, audit.EventMatchingRun, set.RunID,
		fmt.Sprintf("candidates=%d admitted=%d", len(results), admitted))
	s.logger.InfoContext(ctx, "matching run completed",
		"run_id", set.RunID,
		"candidates", len(results),
		"admitted", admitted,
		"duration_ms", durationMs,
	)
	return &set, nil
}

// snapshot drains in-flight mutations via the exclusive gate and reads all
// three inputs while no writer can interleave; the copies it returns are
// detached, so the gate is released before the engine runs.
func (s *Service) snapshot(ctx context.Context) (matching.Snapshot, error) {
	release := s.locks.Exclusive()
	defer release()

	allSeats, err := s.seats.List(ctx, "")
	if err != nil {
		return matching.Snapshot{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list seats")
	}
	entries, err := s.scores.ListByYear(ctx, s.year)
	if err != nil {
		return matching.Snapshot{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list scores")
	}

	snap := matching.Snapshot{
		Year:     s.year,
		Priority: s.priority,
	}
	for _, st := range allSeats {
		if st.Available() {
			snap.Seats = append(snap.Seats, matching.SeatSlot{
				ID:          st.ID,
				Institution: st.Institution,
			})
		}
	}
	snap.Rankings = buildRankings(entries)
	return snap, nil
}

// buildRankings aggregates score entries into one ranking per candidate.
// Aggregate is the unweighted sum of the cycle's subject scores; candidates
// whose every entry is institution-scoped compete only for those targets.
func buildRankings(entries []score.Entry) []matching.CandidateRanking {
	type acc struct {
		total    int
		targets  map[id.InstitutionID]bool
		unscoped bool
	}
	byCandidate := make(map[id.CandidateID]*acc)
	for _, e := range entries {
		a, ok := byCandidate[e.Candidate]
		if !ok {
			a = &acc{targets: make(map[id.InstitutionID]bool)}
			byCandidate[e.Candidate] = a
		}
		a.total += e.Score
		if e.Institution.IsZero() {
			a.unscoped = true
		} else {
			a.targets[e.Institution] = true
		}
	}

	rankings := make([]matching.CandidateRanking, 0, len(byCandidate))
	for cand, a := range byCandidate {
		r := matching.CandidateRanking{Candidate: cand, Aggregate: a.total}
		if !a.unscoped && len(a.targets) > 0 {
			for inst := range a.targets {
				r.Targets = append(r.Targets, inst)
			}
			sort.Slice(r.Targets, func(i, j int) bool { return r.Targets[i] < r.Targets[j] })
		}
		rankings = append(rankings, r)
	}
	sort.Slice(rankings, func(i, j int) bool { return rankings[i].Candidate < rankings[j].Candidate })
	return rankings
}

// Latest returns the current published result set.
func (s *Service) Latest(ctx context.Context) (*matching.ResultSet, error) {
	set, err := s.results.Latest(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "no matching run has been published")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load match results")
	}
	return &set, nil
}

// Get returns one candidate's result from the current set.
func (s *Service) Get(ctx context.Context, candidate id.CandidateID) (*matching.MatchResult, error) {
	if candidate.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "candidate_hash is required")
	}
	result, err := s.results.Get(ctx, candidate)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no result for candidate %s", candidate)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load match result")
	}
	return &result, nil
}

func (s *Service) auditRun(ctx context.Context, event audit.AdmissionEvent, runID uuid.UUID, detail string) {
	s.publisher.Publish(ctx, audit.Event{
		Category:  event.Category(),
		Timestamp: requestcontext.Now(ctx),
		Action:    string(event),
		ActorID:   requestcontext.ActorID(ctx),
		RequestID: requestcontext.RequestID(ctx),
		Detail:    fmt.Sprintf("run_id=%s %s", runID, detail),
	})
}
