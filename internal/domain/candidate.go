package domain

import (
	"context"
	"time"
)

// CandidateProfile is the job seeker's public-facing profile. Recruiters can
// only initiate contact when Discoverable is set.
type CandidateProfile struct {
	UserID       string    `json:"user_id"`
	FullName     string    `json:"full_name"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	Discoverable bool      `json:"discoverable"`
	CvURL        *string   `json:"cv_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CV is a stored candidate document; deletable by admins with an audit entry.
type CV struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	FileURL   string    `json:"file_url"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

type CandidateRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type CVRepository interface {
	GetByID(ctx context.Context, id int64) (*CV, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}
