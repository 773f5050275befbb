package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"edumatch/internal/platform/keylock"
	"edumatch/internal/seat"
	seatmetrics "edumatch/internal/seat/metrics"
	id "edumatch/pkg/domain"
	dErrors "edumatch/pkg/domain-errors"
	audit "edumatch/pkg/platform/audit"
	"edumatch/pkg/platform/sentinel"
	"edumatch/pkg/requestcontext"
)

// Service converts a proposed match into a durable commitment. It is the
// sole writer of the Minted -> Assigned transition, and the only place the
// system-wide one-seat-per-candidate rule is checked, which is why
// confirmation takes the exclusive gate rather than a per-institution lock.
type Service struct {
	seats     seat.Store
	locks     *keylock.Keyed
	publisher audit.Publisher
	metrics   *seatmetrics.Metrics
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *seatmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(seats seat.Store, locks *keylock.Keyed, opts ...Option) (*Service, error) {
	if seats == nil {
		return nil, fmt.Errorf("seat store is required")
	}
	if locks == nil {
		return nil, fmt.Errorf("keyed locks are required")
	}

	svc := &Service{
		seats:     seats,
		locks:     locks,
		publisher: audit.NopPublisher{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Confirm binds the candidate to the seat. The seat must be Minted and the
// candidate must not hold an Assigned seat anywhere; cross-institution double
// admission is rejected. Retrying after a prior success returns the
// seat-assigned error, which callers treat as success-equivalent.
func (s *Service) Confirm(ctx context.Context, seatID id.SeatID, candidate id.CandidateID) (*seat.Seat, error) {
	if seatID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "seat_id is required")
	}
	if candidate.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "candidate_hash is required")
	}

	release := s.locks.Exclusive()
	defer release()

	current, err := s.seats.Get(ctx, seatID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "seat %s not found", seatID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up seat")
	}

	switch current.State {
	case seat.StateBurned:
		return nil, dErrors.Newf(dErrors.CodeSeatBurned, "seat %s is burned", seatID)
	case seat.StateAssigned:
		return nil, dErrors.Newf(dErrors.CodeSeatAssigned, "seat %s is already assigned", seatID)
	}

	held, err := s.seats.FindAssigned(ctx, candidate)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check candidate assignments")
	}
	if held != nil {
		return nil, dErrors.Newf(dErrors.CodeCandidateAssigned,
			"candidate already holds seat %s", held.ID)
	}

	current.Owner = candidate
	current.State = seat.StateAssigned
	current.UpdatedAt = requestcontext.Now(ctx)
	if err := s.seats.Put(ctx, current); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store seat")
	}

	s.metrics.IncrementAssigned()
	s.publisher.Publish(ctx, audit.Event{
		Category:    audit.EventSeatAssigned.Category(),
		Timestamp:   current.UpdatedAt,
		Action:      string(audit.EventSeatAssigned),
		SeatID:      current.ID,
		Institution: current.Institution,
		Candidate:   candidate,
		ActorID:     requestcontext.ActorID(ctx),
		RequestID:   requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "seat assigned",
		"seat_id", seatID,
		"institution_id", current.Institution,
		"candidate_id", candidate,
	)
	return current, nil
}
