package domain

import "context"

// Entity type names used in audit entries.
const (
	EntityTypeUser    = "user"
	EntityTypeCompany = "company"
	EntityTypeJob     = "job"
	EntityTypeCV      = "cv"
)

// CascadeResult reports what a cascading delete removed, for the audit
// entry's metadata.
type CascadeResult struct {
	JobsDeleted          int64 `json:"jobsDeleted,omitempty"`
	CVsDeleted           int64 `json:"cvsDeleted,omitempty"`
	InteractionsDeleted  int64 `json:"interactionsDeleted,omitempty"`
	SavedSearchesDeleted int64 `json:"savedSearchesDeleted,omitempty"`
}

// AdminUsecase performs destructive entity lifecycle operations. Each delete
// collects affected counts, performs the cascade, then writes exactly one
// audit entry with the pre-delete snapshot and cascade counts.
type AdminUsecase interface {
	DeleteJob(ctx context.Context, role string, jobID int64, reason string) error
	DeleteCompany(ctx context.Context, role string, companyID int64, reason string) error
	DeleteUser(ctx context.Context, role, userID, reason string) error
	DeleteCV(ctx context.Context, role string, cvID int64, reason string) error
}
