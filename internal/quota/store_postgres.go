package quota

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	id "edumatch/pkg/domain"
)

// PostgresStore persists quotas in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Set(ctx context.Context, q Quota) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quotas (institution_id, seat_count, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (institution_id)
		DO UPDATE SET seat_count = EXCLUDED.seat_count, updated_at = EXCLUDED.updated_at`,
		q.Institution.String(), q.SeatCount, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("set quota: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, institution id.InstitutionID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT seat_count FROM quotas WHERE institution_id = $1`,
		institution.String(),
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get quota: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Quota, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT institution_id, seat_count, updated_at FROM quotas ORDER BY institution_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list quotas: %w", err)
	}
	defer rows.Close()

	var out []Quota
	for rows.Next() {
		var q Quota
		var inst string
		if err := rows.Scan(&inst, &q.SeatCount, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quota row: %w", err)
		}
		q.Institution = id.InstitutionID(inst)
		out = append(out, q)
	}
	return out, rows.Err()
}
