package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"edumatch/internal/platform/keylock"
	"edumatch/internal/quota"
	"edumatch/internal/seat"
	"edumatch/internal/seat/metrics"
	id "edumatch/pkg/domain"
	dErrors "edumatch/pkg/domain-errors"
	audit "edumatch/pkg/platform/audit"
	"edumatch/pkg/platform/sentinel"
	"edumatch/pkg/requestcontext"
)

// Service owns seat lifecycle transitions up to (but not including)
// assignment confirmation, which lives in internal/assignment so that the
// cross-institution single-seat invariant has a single writer.
type Service struct {
	seats     seat.Store
	quotas    quota.Store
	locks     *keylock.Keyed
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

func New(seats seat.Store, quotas quota.Store, locks *keylock.Keyed, opts ...Option) (*Service, error) {
	if seats == nil {
		return nil, fmt.Errorf("seat store is required")
	}
	if quotas == nil {
		return nil, fmt.Errorf("quota store is required")
	}
	if locks == nil {
		return nil, fmt.Errorf("keyed locks are required")
	}

	svc := &Service{
		seats:     seats,
		quotas:    quotas,
		locks:     locks,
		publisher: audit.NopPublisher{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Mint creates a seat for the institution, gated by its quota. The operation
// is idempotent per caller-supplied seat id: re-minting an existing non-burned
// seat returns it unchanged, re-minting a burned id is rejected.
func (s *Service) Mint(ctx context.Context, seatID id.SeatID, institution id.InstitutionID) (*seat.Seat, error) {
	if seatID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "seat_id is required")
	}
	if institution.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "institution_id is required")
	}

	unlock := s.locks.Lock(institution.String())
	defer unlock()

	existing, err := s.seats.Get(ctx, seatID)
	switch {
	case err == nil:
		if existing.State == seat.StateBurned {
			return nil, dErrors.Newf(dErrors.CodeSeatBurned, "seat %s was burned and cannot be re-minted", seatID)
		}
		if existing.Institution != institution {
			return nil, dErrors.Newf(dErrors.CodeConflict, "seat %s belongs to another institution", seatID)
		}
		// Idempotent re-mint: same seat, no quota double-count.
		return existing, nil
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up seat")
	}

	authorized, err := s.quotas.Get(ctx, institution)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get quota")
	}
	active, err := s.seats.CountActive(ctx, institution)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count seats")
	}
	if active >= authorized {
		s.metrics.IncrementQuotaRejected()
		return nil, dErrors.Newf(dErrors.CodeQuotaExceeded,
			"institution %s has %d of %d seats minted", institution, active, authorized)
	}

	now := requestcontext.Now(ctx)
	minted := &seat.Seat{
		ID:          seatID,
		Institution: institution,
		State:       seat.StateMinted,
		MintedAt:    now,
		UpdatedAt:   now,
	}
	if err := s.seats.Put(ctx, minted); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store seat")
	}

	s.metrics.IncrementMinted()
	s.audit(ctx, audit.EventSeatMinted, minted, "")
	s.logger.InfoContext(ctx, "seat minted",
		"seat_id", seatID,
		"institution_id", institution,
		"active", active+1,
		"quota", authorized,
	)
	return minted, nil
}

// Burn retires an unused seat. Assigned seats are rejected here: vacating a
// confirmed admission must go through VacateAndBurn so the acknowledgment is
// explicit.
func (s *Service) Burn(ctx context.Context, seatID id.SeatID) (*seat.Seat, error) {
	return s.burn(ctx, seatID, false)
}

// VacateAndBurn burns an assigned seat, vacating the candidate's admission.
// The owner is frozen on the burned seat for audit.
func (s *Service) VacateAndBurn(ctx context.Context, seatID id.SeatID) (*seat.Seat, error) {
	return s.burn(ctx, seatID, true)
}

func (s *Service) burn(ctx context.Context, seatID id.SeatID, vacate bool) (*seat.Seat, error) {
	if seatID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "seat_id is required")
	}

	// Locate the seat first to learn its institution, then revalidate under
	// that institution's lock.
	peek, err := s.seats.Get(ctx, seatID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "seat %s not found", seatID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up seat")
	}

	unlock := s.locks.Lock(peek.Institution.String())
	defer unlock()

	current, err := s.seats.Get(ctx, seatID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up seat")
	}

	switch current.State {
	case seat.StateBurned:
		return nil, dErrors.Newf(dErrors.CodeSeatBurned, "seat %s is already burned", seatID)
	case seat.StateAssigned:
		if !vacate {
			return nil, dErrors.Newf(dErrors.CodeSeatAssigned,
				"seat %s is assigned; vacate_seat is required to burn it", seatID)
		}
	case seat.StateMinted:
		if vacate {
			return nil, dErrors.Newf(dErrors.CodeConflict, "seat %s has no assignment to vacate", seatID)
		}
	}

	current.State = seat.StateBurned
	current.UpdatedAt = requestcontext.Now(ctx)
	if err := s.seats.Put(ctx, current); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store seat")
	}

	event := audit.EventSeatBurned
	if vacate {
		event = audit.EventSeatVacated
		s.metrics.IncrementVacated()
	} else {
		s.metrics.IncrementBurned()
	}
	s.audit(ctx, event, current, "")
	s.logger.InfoContext(ctx, "seat burned",
		"seat_id", seatID,
		"institution_id", current.Institution,
		"vacated", vacate,
	)
	return current, nil
}

// Get returns one seat.
func (s *Service) Get(ctx context.Context, seatID id.SeatID) (*seat.Seat, error) {
	found, err := s.seats.Get(ctx, seatID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "seat %s not found", seatID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up seat")
	}
	return found, nil
}

// List returns seats ordered by id, optionally restricted to an institution.
func (s *Service) List(ctx context.Context, institution id.InstitutionID) ([]*seat.Seat, error) {
	seats, err := s.seats.List(ctx, institution)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list seats")
	}
	return seats, nil
}

func (s *Service) audit(ctx context.Context, event audit.AdmissionEvent, sub *seat.Seat, detail string) {
	s.publisher.Publish(ctx, audit.Event{
		Category:    event.Category(),
		Timestamp:   requestcontext.Now(ctx),
		Action:      string(event),
		SeatID:      sub.ID,
		Institution: sub.Institution,
		Candidate:   sub.Owner,
		ActorID:     requestcontext.ActorID(ctx),
		RequestID:   requestcontext.RequestID(ctx),
		Detail:      detail,
	})
}
