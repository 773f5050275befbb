package seat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	id "edumatch/pkg/domain"
	"edumatch/pkg/platform/sentinel"
)

// PostgresStore persists seats in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, seatID id.SeatID) (*Seat, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, institution_id, owner, state, minted_at, updated_at
		FROM seats WHERE id = $1`, seatID.String())
	return scanSeat(row)
}

func (s *PostgresStore) Put(ctx context.Context, seat *Seat) error {
	var owner sql.NullString
	if !seat.Owner.IsZero() {
		owner = sql.NullString{String: seat.Owner.String(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO seats (id, institution_id, owner, state, minted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET owner = EXCLUDED.owner, state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`,
		seat.ID.String(), seat.Institution.String(), owner, string(seat.State),
		seat.MintedAt, seat.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put seat: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, institution id.InstitutionID) ([]*Seat, error) {
	query := `
		SELECT id, institution_id, owner, state, minted_at, updated_at
		FROM seats ORDER BY id ASC`
	args := []any{}
	if !institution.IsZero() {
		query = `
		SELECT id, institution_id, owner, state, minted_at, updated_at
		FROM seats WHERE institution_id = $1 ORDER BY id ASC`
		args = append(args, institution.String())
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	defer rows.Close()

	var out []*Seat
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, seat)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountActive(ctx context.Context, institution id.InstitutionID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seats WHERE institution_id = $1 AND state != $2`,
		institution.String(), string(StateBurned),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active seats: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) FindAssigned(ctx context.Context, candidate id.CandidateID) (*Seat, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, institution_id, owner, state, minted_at, updated_at
		FROM seats WHERE owner = $1 AND state = $2`,
		candidate.String(), string(StateAssigned))
	return scanSeat(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeat(row rowScanner) (*Seat, error) {
	var seat Seat
	var seatID, inst, state string
	var owner sql.NullString
	err := row.Scan(&seatID, &inst, &owner, &state, &seat.MintedAt, &seat.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan seat row: %w", err)
	}
	seat.ID = id.SeatID(seatID)
	seat.Institution = id.InstitutionID(inst)
	seat.State = State(state)
	if owner.Valid {
		seat.Owner = id.CandidateID(owner.String)
	}
	return &seat, nil
}
