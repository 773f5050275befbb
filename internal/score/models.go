package score

import (
	"time"

	id "edumatch/pkg/domain"
)

// Entry is one recorded exam score. At most one entry exists per
// (candidate, subject, year); a re-push overwrites. Entries are never
// deleted.
type Entry struct {
	Candidate id.CandidateID `json:"candidate_id"`
	Subject   id.Subject     `json:"subject"`
	Score     int            `json:"score"`
	Year      int            `json:"year"`
	// Institution scopes the entry to a single institution's admission pool.
	// Unscoped entries put the candidate in the shared pool.
	Institution id.InstitutionID `json:"institution_id,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Key identifies an entry's uniqueness slot.
type Key struct {
	Candidate id.CandidateID
	Subject   id.Subject
	Year      int
}

func (e Entry) Key() Key {
	return Key{Candidate: e.Candidate, Subject: e.Subject, Year: e.Year}
}
