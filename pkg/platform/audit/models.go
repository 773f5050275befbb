// Package audit captures the engine's admission trail. Every lifecycle
// mutation (mint, burn, assignment, score push, quota change, matching run)
// emits an Event; sinks decide where events end up (memory, Postgres outbox,
// Kafka).
package audit

import (
	"time"

	id "edumatch/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose. This
// enables different retention policies and routing downstream.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance for an
	// admission cycle: anything that binds or unbinds a candidate to a seat.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational
	// visibility: inventory changes, score ingestion, matching runs.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category    EventCategory
	Timestamp   time.Time
	Action      string
	SeatID      id.SeatID
	Institution id.InstitutionID
	Candidate   id.CandidateID
	// ActorID is the operator who performed the action, as supplied by the
	// authorization context. Opaque to the engine.
	ActorID string
	// RequestID is the correlation id from the HTTP request context.
	RequestID string
	// Detail carries free-form context (e.g. the new quota value or the
	// matching run id).
	Detail string
}

// AdmissionEvent names the actions the engine audits.
type AdmissionEvent string

const (
	EventSeatMinted      AdmissionEvent = "seat_minted"
	EventSeatBurned      AdmissionEvent = "seat_burned"
	EventSeatVacated     AdmissionEvent = "seat_vacated"
	EventSeatAssigned    AdmissionEvent = "seat_assigned"
	EventScorePushed     AdmissionEvent = "score_pushed"
	EventQuotaSet        AdmissionEvent = "quota_set"
	EventMatchingRun     AdmissionEvent = "matching_completed"
	EventMatchingFailed  AdmissionEvent = "matching_failed"
)

// eventCategories is the source of truth for action classification.
var eventCategories = map[AdmissionEvent]EventCategory{
	EventSeatMinted:     CategoryOperations,
	EventSeatBurned:     CategoryOperations,
	EventSeatVacated:    CategoryCompliance,
	EventSeatAssigned:   CategoryCompliance,
	EventScorePushed:    CategoryOperations,
	EventQuotaSet:       CategoryOperations,
	EventMatchingRun:    CategoryOperations,
	EventMatchingFailed: CategoryOperations,
}

// Category returns the category for the event, defaulting to operations for
// unknown actions so nothing is silently dropped.
func (e AdmissionEvent) Category() EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}
