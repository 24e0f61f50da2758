package domain

import (
	"context"
	"time"
)

// Interaction status constants. Withdrawn is terminal: once reached, no
// further status mutation is permitted.
const (
	InteractionStatusNew         = "new"
	InteractionStatusContacted   = "contacted"
	InteractionStatusInterviewed = "interviewed"
	InteractionStatusOffered     = "offered"
	InteractionStatusRejected    = "rejected"
	InteractionStatusWithdrawn   = "withdrawn"
)

// Origin of the relationship. The recruiter-contact uniqueness constraint
// applies only to recruiter-initiated records.
const (
	InteractionOriginCandidate = "candidate"
	InteractionOriginRecruiter = "recruiter"
)

// ValidInteractionStatus reports whether s is a known status value.
func ValidInteractionStatus(s string) bool {
	switch s {
	case InteractionStatusNew, InteractionStatusContacted, InteractionStatusInterviewed,
		InteractionStatusOffered, InteractionStatusRejected, InteractionStatusWithdrawn:
		return true
	}
	return false
}

// InteractionRecord models one candidate's relationship to a job posting
// and/or recruiter. RecruiterNotes and InternalNotes are recruiter-private:
// they must never be serialized into a job-seeker-facing response (see
// internal/visibility).
type InteractionRecord struct {
	ID                  string     `json:"id"`
	JobID               *int64     `json:"job_id,omitempty"` // absent for off-posting recruiter contact
	RecruiterID         string     `json:"recruiter_id"`
	CandidateID         string     `json:"candidate_id"`
	Origin              string     `json:"origin"`
	Status              string     `json:"status"`
	AppliedAt           time.Time  `json:"applied_at"`
	LastActivityAt      time.Time  `json:"last_activity_at"`
	ViewedAt            *time.Time `json:"viewed_at,omitempty"`    // write-once, first recruiter view
	WithdrawnAt         *time.Time `json:"withdrawn_at,omitempty"` // set iff status == withdrawn
	ArchivedByJobSeeker bool       `json:"archived_by_job_seeker"`
	ArchivedByRecruiter bool       `json:"archived_by_recruiter"`
	RecruiterNotes      *string    `json:"recruiter_notes,omitempty"`
	InternalNotes       *string    `json:"internal_notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Joined display data for list/detail responses
	JobTitle            *string `json:"job_title,omitempty"`
	CompanyName         *string `json:"company_name,omitempty"`
	CandidateName       *string `json:"candidate_name,omitempty"`
	RecruiterName       *string `json:"recruiter_name,omitempty"`
	RecruiterEmail      *string `json:"recruiter_email,omitempty"`
}

// Withdrawn reports whether the record has reached the terminal state.
func (r *InteractionRecord) Withdrawn() bool {
	return r.Status == InteractionStatusWithdrawn || r.WithdrawnAt != nil
}

// ArchiveParty identifies which side's archive flag a request targets.
type ArchiveParty string

const (
	ArchiveByJobSeeker ArchiveParty = "job_seeker"
	ArchiveByRecruiter ArchiveParty = "recruiter"
)

// InteractionRepository defines data access for interaction records. Create
// maps unique-index violations to ErrDuplicateInteraction; the conditional
// mutations re-validate the terminal state at write time and return
// ErrAlreadyWithdrawn when the row was already terminal.
type InteractionRepository interface {
	Create(ctx context.Context, rec *InteractionRecord) error
	GetByID(ctx context.Context, id string) (*InteractionRecord, error)
	FindByJobAndCandidate(ctx context.Context, jobID int64, candidateID string) (*InteractionRecord, error)
	// FindRecruiterContact looks up an existing recruiter-initiated record
	// for the pair, mirroring the partial unique index (origin='recruiter').
	// A candidate's own application never matches.
	FindRecruiterContact(ctx context.Context, recruiterID, candidateID string) (*InteractionRecord, error)
	ListByRecruiter(ctx context.Context, recruiterID string, includeArchived bool) ([]InteractionRecord, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]InteractionRecord, error)
	CountByJobID(ctx context.Context, jobID int64) (int64, error)

	// UpdateStatus applies WHERE status <> 'withdrawn' so the terminal check
	// holds under concurrent writes, not just at read time.
	UpdateStatus(ctx context.Context, id, status string, withdrawnAt *time.Time) (*InteractionRecord, error)
	// Withdraw is a conditional update: it only succeeds on a row that is
	// not yet withdrawn, closing the duplicate-withdrawal race.
	Withdraw(ctx context.Context, id string, at time.Time) (*InteractionRecord, error)
	// MarkViewed sets viewed_at only when currently null (write-once).
	MarkViewed(ctx context.Context, id string, at time.Time) error
	SetArchiveFlag(ctx context.Context, id string, party ArchiveParty, value bool) (*InteractionRecord, error)
	UpdateNotes(ctx context.Context, id string, recruiterNotes, internalNotes *string) (*InteractionRecord, error)
	TouchActivity(ctx context.Context, id string, at time.Time) error

	DeleteByCandidate(ctx context.Context, candidateID string) (int64, error)
	DeleteByRecruiter(ctx context.Context, recruiterID string) (int64, error)
}

// InteractionUsecase is the role-gated surface of the applicant tracking
// core. Handlers project every returned record for the caller's role before
// it goes out (see internal/visibility).
type InteractionUsecase interface {
	// Candidate operations
	ApplyToJob(ctx context.Context, candidateID string, jobID int64) (*InteractionRecord, error)
	Withdraw(ctx context.Context, candidateID, recordID string) (*InteractionRecord, error)
	CheckApplied(ctx context.Context, candidateID string, jobID int64) (bool, *InteractionRecord, error)
	ListForCandidate(ctx context.Context, candidateID string) ([]InteractionRecord, error)

	// Recruiter operations
	ContactCandidate(ctx context.Context, recruiterID, candidateID string, jobID *int64) (*InteractionRecord, error)
	ListForRecruiter(ctx context.Context, recruiterID string) ([]InteractionRecord, error)
	GetRecord(ctx context.Context, actorID, role, recordID string) (*InteractionRecord, error)
	SetStatus(ctx context.Context, actorID, role, recordID, newStatus string) (*InteractionRecord, error)
	UpdateNotes(ctx context.Context, actorID, role, recordID string, recruiterNotes, internalNotes *string) (*InteractionRecord, error)
	ContactCandidateEmail(ctx context.Context, recruiterID, recordID, subject, message string) error

	// Either party, own flag only
	SetArchiveFlag(ctx context.Context, actorID, role, recordID string, party ArchiveParty, value bool) (*InteractionRecord, error)
}
