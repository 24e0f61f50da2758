package domain

import (
	"context"
	"time"
)

// Alert frequency constants
const (
	AlertFrequencyDaily  = "daily"
	AlertFrequencyWeekly = "weekly"
	AlertFrequencyNever  = "never"
)

// SavedSearch is a persisted filter specification. The match engine reads
// it; only its owner may mutate it. Empty criteria impose no constraint.
type SavedSearch struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Keyword     string     `json:"keyword,omitempty"`
	Location    string     `json:"location,omitempty"`
	CountryCode string     `json:"country_code,omitempty"`
	Category    string     `json:"category,omitempty"`
	Sport       string     `json:"sport,omitempty"`
	Language    string     `json:"language,omitempty"`
	Frequency   string     `json:"frequency"` // daily, weekly, never
	Active      bool       `json:"active"`
	LastSent    *time.Time `json:"last_sent,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type SavedSearchRepository interface {
	Create(ctx context.Context, search *SavedSearch) error
	GetByID(ctx context.Context, id string) (*SavedSearch, error)
	ListByUser(ctx context.Context, userID string) ([]SavedSearch, error)
	ListActive(ctx context.Context) ([]SavedSearch, error)
	Update(ctx context.Context, search *SavedSearch) error
	UpdateLastSent(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// SavedSearchUsecase is the owner-gated CRUD surface.
type SavedSearchUsecase interface {
	Create(ctx context.Context, userID string, search *SavedSearch) (*SavedSearch, error)
	ListOwn(ctx context.Context, userID string) ([]SavedSearch, error)
	Update(ctx context.Context, userID string, search *SavedSearch) (*SavedSearch, error)
	Delete(ctx context.Context, userID, searchID string) error
}

// AlertRunSummary reports one scheduler pass over the saved-search corpus.
type AlertRunSummary struct {
	SearchesConsidered int `json:"searches_considered"`
	SearchesDue        int `json:"searches_due"`
	NotificationsSent  int `json:"notifications_sent"`
	DispatchFailures   int `json:"dispatch_failures"`
}

// AlertUsecase is the candidate-match engine plus the scheduler entry point.
type AlertUsecase interface {
	// FindMatches is a pure filter/sort: every non-empty criterion must be
	// satisfied; featured postings sort first, then newest.
	FindMatches(ctx context.Context, search *SavedSearch, since *time.Time) ([]Job, error)
	// RunJobAlerts dispatches digests for due searches and bumps last_sent
	// only when dispatch succeeded.
	RunJobAlerts(ctx context.Context, now time.Time) (*AlertRunSummary, error)
}
