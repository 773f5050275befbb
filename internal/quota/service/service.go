package service

import (
	"context"
	"fmt"
	"log/slog"

	"edumatch/internal/platform/keylock"
	"edumatch/internal/quota"
	id "edumatch/pkg/domain"
	dErrors "edumatch/pkg/domain-errors"
	audit "edumatch/pkg/platform/audit"
	"edumatch/pkg/requestcontext"
)

// Service owns the quota table. Setting a quota gates future mints only;
// already-minted seats are never invalidated by a lowered quota.
type Service struct {
	store     quota.Store
	locks     *keylock.Keyed
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

func New(store quota.Store, locks *keylock.Keyed, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("quota store is required")
	}
	if locks == nil {
		return nil, fmt.Errorf("keyed locks are required")
	}

	svc := &Service{
		store:     store,
		locks:     locks,
		publisher: audit.NopPublisher{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Set overwrites the institution's authorized seat count.
func (s *Service) Set(ctx context.Context, institution id.InstitutionID, seatCount int) (*quota.Quota, error) {
	if institution.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "institution_id is required")
	}
	if seatCount < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "seat_count must be non-negative")
	}

	unlock := s.locks.Lock(institution.String())
	defer unlock()

	q := quota.Quota{
		Institution: institution,
		SeatCount:   seatCount,
		UpdatedAt:   requestcontext.Now(ctx),
	}
	if err := s.store.Set(ctx, q); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to set quota")
	}

	s.publisher.Publish(ctx, audit.Event{
		Category:    audit.EventQuotaSet.Category(),
		Timestamp:   q.UpdatedAt,
		Action:      string(audit.EventQuotaSet),
		Institution: institution,
		ActorID:     requestcontext.ActorID(ctx),
		RequestID:   requestcontext.RequestID(ctx),
		Detail:      fmt.Sprintf("seat_count=%d", seatCount),
	})

	s.logger.InfoContext(ctx, "quota set",
		"institution_id", institution,
		"seat_count", seatCount,
	)
	return &q, nil
}

// Get returns the institution's current quota, zero if never configured.
func (s *Service) Get(ctx context.Context, institution id.InstitutionID) (int, error) {
	if institution.IsZero() {
		return 0, dErrors.New(dErrors.CodeBadRequest, "institution_id is required")
	}
	count, err := s.store.Get(ctx, institution)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get quota")
	}
	return count, nil
}

// List returns all configured quotas ordered by institution id.
func (s *Service) List(ctx context.Context) ([]quota.Quota, error) {
	quotas, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list quotas")
	}
	return quotas, nil
}
