package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	audit "edumatch/pkg/platform/audit"

	"github.com/google/uuid"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table and published to Kafka by the
// publisher worker; Kafka is the source of truth for the admission trail.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// outboxPayload is the JSON structure published to Kafka. Field names match
// audit.Event for proper deserialization by downstream consumers.
type outboxPayload struct {
	ID          string `json:"ID"`
	Category    string `json:"Category"`
	Timestamp   string `json:"Timestamp"`
	Action      string `json:"Action"`
	SeatID      string `json:"SeatID,omitempty"`
	Institution string `json:"Institution,omitempty"`
	Candidate   string `json:"Candidate,omitempty"`
	ActorID     string `json:"ActorID,omitempty"`
	RequestID   string `json:"RequestID,omitempty"`
	Detail      string `json:"Detail,omitempty"`
}

// Append writes an audit event to the outbox table for Kafka publishing.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()

	// Always derive category from action; eventCategories is the source of truth.
	category := audit.AdmissionEvent(event.Action).Category()

	payload := outboxPayload{
		ID:          eventID.String(),
		Category:    string(category),
		Timestamp:   event.Timestamp.Format(time.RFC3339Nano),
		Action:      event.Action,
		SeatID:      event.SeatID.String(),
		Institution: event.Institution.String(),
		Candidate:   event.Candidate.String(),
		ActorID:     event.ActorID,
		RequestID:   event.RequestID,
		Detail:      event.Detail,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	// The aggregate id keys Kafka partitioning: seat-scoped events partition
	// by seat, the rest by candidate or a fixed key.
	aggregateID := event.SeatID.String()
	if aggregateID == "" {
		aggregateID = event.Candidate.String()
	}
	if aggregateID == "" {
		aggregateID = "engine"
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_outbox (id, aggregate_id, category, action, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		eventID, aggregateID, string(category), event.Action, payloadBytes, event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// Unpublished returns up to limit outbox rows that have not yet been pushed
// to Kafka, oldest first.
func (s *Store) Unpublished(ctx context.Context, limit int) ([]OutboxRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, aggregate_id, payload
		FROM audit_outbox
		WHERE published_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit outbox: %w", err)
	}
	defer rows.Close()

	var out []OutboxRow
	for rows.Next() {
		var r OutboxRow
		if err := rows.Scan(&r.ID, &r.AggregateID, &r.Payload); err != nil {
			return nil, fmt.Errorf("scan audit outbox row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MarkPublished stamps outbox rows after a successful Kafka produce.
func (s *Store) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	for _, rowID := range ids {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE audit_outbox SET published_at = NOW() WHERE id = $1`, rowID); err != nil {
			return fmt.Errorf("mark audit row published: %w", err)
		}
	}
	return nil
}

// OutboxRow is one pending outbox record.
type OutboxRow struct {
	ID          uuid.UUID
	AggregateID string
	Payload     []byte
}
