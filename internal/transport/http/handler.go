// Package httptransport is the thin HTTP layer over the engine's services.
// Handlers decode, delegate, and encode; business rules stay in the services.
package httptransport

import (
	"log/slog"

	assignmentsvc "edumatch/internal/assignment/service"
	matchingsvc "edumatch/internal/matching/service"
	quotasvc "edumatch/internal/quota/service"
	scoresvc "edumatch/internal/score/service"
	seatsvc "edumatch/internal/seat/service"
)

// Handler bundles the engine's services behind the admission API.
type Handler struct {
	seats       *seatsvc.Service
	scores      *scoresvc.Service
	quotas      *quotasvc.Service
	matching    *matchingsvc.Service
	assignments *assignmentsvc.Service
	cycleYear   int
	logger      *slog.Logger
}

func NewHandler(
	seats *seatsvc.Service,
	scores *scoresvc.Service,
	quotas *quotasvc.Service,
	matching *matchingsvc.Service,
	assignments *assignmentsvc.Service,
	cycleYear int,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		seats:       seats,
		scores:      scores,
		quotas:      quotas,
		matching:    matching,
		assignments: assignments,
		cycleYear:   cycleYear,
		logger:      logger,
	}
}
