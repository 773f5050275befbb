// Package domain holds the typed identifiers shared across the engine.
//
// Candidate and institution identities arrive from the surrounding identity
// subsystem as opaque references (hashes/DIDs). The engine never inspects or
// validates their internal structure; the types below exist so a seat id can
// never be passed where a candidate hash is expected.
package domain

// CandidateID is an opaque candidate reference (hash or DID) issued by the
// identity collaborator.
type CandidateID string

// InstitutionID is an opaque institution reference.
type InstitutionID string

// SeatID identifies a single admission seat. Seat ids are globally unique;
// the owning institution is carried as a separate field on the seat record.
type SeatID string

// Subject names an exam subject within an admission cycle.
type Subject string

// SubjectComposite is the default subject used when a score is pushed without
// one, matching callers that report a single combined exam score.
const SubjectComposite Subject = "composite"

func (c CandidateID) String() string   { return string(c) }
func (i InstitutionID) String() string { return string(i) }
func (s SeatID) String() string        { return string(s) }
func (s Subject) String() string       { return string(s) }

// IsZero reports whether the candidate reference is empty.
func (c CandidateID) IsZero() bool { return c == "" }

// IsZero reports whether the institution reference is empty.
func (i InstitutionID) IsZero() bool { return i == "" }

// IsZero reports whether the seat id is empty.
func (s SeatID) IsZero() bool { return s == "" }
