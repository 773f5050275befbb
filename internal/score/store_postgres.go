package score

import (
	"context"
	"database/sql"
	"fmt"

	id "edumatch/pkg/domain"
)

// PostgresStore persists score entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, e Entry) error {
	var inst sql.NullString
	if !e.Institution.IsZero() {
		inst = sql.NullString{String: e.Institution.String(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scores (candidate_id, subject, year, score, institution_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (candidate_id, subject, year)
		DO UPDATE SET score = EXCLUDED.score, institution_id = EXCLUDED.institution_id,
		              updated_at = EXCLUDED.updated_at`,
		e.Candidate.String(), e.Subject.String(), e.Year, e.Score, inst, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put score: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByCandidate(ctx context.Context, candidate id.CandidateID) ([]Entry, error) {
	return s.query(ctx, `
		SELECT candidate_id, subject, year, score, institution_id, updated_at
		FROM scores WHERE candidate_id = $1
		ORDER BY subject ASC, year ASC`, candidate.String())
}

func (s *PostgresStore) ListByYear(ctx context.Context, year int) ([]Entry, error) {
	return s.query(ctx, `
		SELECT candidate_id, subject, year, score, institution_id, updated_at
		FROM scores WHERE year = $1
		ORDER BY candidate_id ASC, subject ASC`, year)
}

func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	return s.query(ctx, `
		SELECT candidate_id, subject, year, score, institution_id, updated_at
		FROM scores
		ORDER BY candidate_id ASC, subject ASC`)
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var candidate, subject string
		var inst sql.NullString
		if err := rows.Scan(&candidate, &subject, &e.Year, &e.Score, &inst, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		e.Candidate = id.CandidateID(candidate)
		e.Subject = id.Subject(subject)
		if inst.Valid {
			e.Institution = id.InstitutionID(inst.String)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
