package domain

import (
	"context"
	"time"
)

type Job struct {
	ID              int64     `json:"id"`
	CompanyID       int64     `json:"company_id"`
	RecruiterUserID *string   `json:"recruiter_user_id,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	CountryCode     string    `json:"country_code"` // ISO 3166-1 alpha-2
	Categories      []string  `json:"categories"`
	Sports          []string  `json:"sports"`
	Languages       []string  `json:"languages"`
	Featured        bool      `json:"featured"`
	Unpublished     bool      `json:"unpublished"` // opt-in; absent/false means published
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined data for list responses
	CompanyName *string `json:"company_name,omitempty"`
}

// Published reports whether the posting is visible to applicants and the
// match engine. Unpublished is opt-in, so the zero value counts as published.
func (j *Job) Published() bool {
	return !j.Unpublished
}

// JobSummary is the field-limited view of a posting safe for any caller,
// used for disambiguation sets and job-seeker projections.
type JobSummary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
}

func (j *Job) Summary() JobSummary {
	s := JobSummary{ID: j.ID, Title: j.Title, Location: j.Location}
	if j.CompanyName != nil {
		s.Company = *j.CompanyName
	}
	return s
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	FetchPublished(ctx context.Context, since *time.Time) ([]Job, error)
	FetchPublishedByRecruiter(ctx context.Context, recruiterUserID string) ([]Job, error)
	FetchPublic(ctx context.Context, limit, offset int) ([]Job, int64, error)
	CountByCompanyID(ctx context.Context, companyID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	GetJobDetails(ctx context.Context, id int64) (*Job, error)
	ListPublicJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
}
