package httptransport

import (
	dErrors "edumatch/pkg/domain-errors"
)

// MintSeatRequest mints one seat for an institution. The seat id is caller
// supplied, which is what makes mint retries idempotent.
type MintSeatRequest struct {
	SeatID        string `json:"seat_id"`
	InstitutionID string `json:"institution_id"`
}

func (r MintSeatRequest) Validate() error {
	if r.SeatID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "seat_id is required")
	}
	if r.InstitutionID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "institution_id is required")
	}
	return nil
}

// BurnSeatRequest retires a seat by id. Used by both burn_seat and
// vacate_seat.
type BurnSeatRequest struct {
	SeatID string `json:"seat_id"`
}

func (r BurnSeatRequest) Validate() error {
	if r.SeatID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "seat_id is required")
	}
	return nil
}

// PushScoreRequest records a candidate's exam score. Subject and year are
// optional: omitted values fall back to the composite subject and the
// configured cycle year, matching callers that push one combined score.
type PushScoreRequest struct {
	CandidateHash string `json:"candidate_hash"`
	Score         *int   `json:"score"`
	Subject       string `json:"subject,omitempty"`
	Year          int    `json:"year,omitempty"`
	InstitutionID string `json:"institution_id,omitempty"`
}

func (r PushScoreRequest) Validate() error {
	if r.CandidateHash == "" {
		return dErrors.New(dErrors.CodeBadRequest, "candidate_hash is required")
	}
	if r.Score == nil {
		return dErrors.New(dErrors.CodeBadRequest, "score is required")
	}
	return nil
}

// AssignSeatRequest confirms a proposed assignment.
type AssignSeatRequest struct {
	SeatID        string `json:"seat_id"`
	CandidateHash string `json:"candidate_hash"`
}

func (r AssignSeatRequest) Validate() error {
	if r.SeatID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "seat_id is required")
	}
	if r.CandidateHash == "" {
		return dErrors.New(dErrors.CodeBadRequest, "candidate_hash is required")
	}
	return nil
}

// CreateQuotaRequest sets an institution's authorized seat count.
type CreateQuotaRequest struct {
	InstitutionID string `json:"institution_id"`
	SeatCount     *int   `json:"seat_count"`
}

func (r CreateQuotaRequest) Validate() error {
	if r.InstitutionID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "institution_id is required")
	}
	if r.SeatCount == nil {
		return dErrors.New(dErrors.CodeBadRequest, "seat_count is required")
	}
	return nil
}
