package usecase

import (
	"context"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
)

// AlertMailer dispatches job-alert digests.
type AlertMailer interface {
	SendJobAlert(to string, data email.AlertEmailData) error
}

type alertUsecase struct {
	jobRepo         domain.JobRepository
	savedSearchRepo domain.SavedSearchRepository
	userRepo        domain.UserRepository
	mailer          AlertMailer
}

// NewAlertUsecase creates the candidate-match engine and alert scheduler
func NewAlertUsecase(
	jobRepo domain.JobRepository,
	savedSearchRepo domain.SavedSearchRepository,
	userRepo domain.UserRepository,
	mailer AlertMailer,
) domain.AlertUsecase {
	return &alertUsecase{
		jobRepo:         jobRepo,
		savedSearchRepo: savedSearchRepo,
		userRepo:        userRepo,
		mailer:          mailer,
	}
}

// FindMatches evaluates a saved search against published postings. Every
// non-empty criterion must hold (pure conjunction); empty criteria are
// wildcards. Ordering is featured first, then newest, inherited from the
// repository query.
func (uc *alertUsecase) FindMatches(ctx context.Context, search *domain.SavedSearch, since *time.Time) ([]domain.Job, error) {
	jobs, err := uc.jobRepo.FetchPublished(ctx, since)
	if err != nil {
		return nil, storageErr(err)
	}

	matches := make([]domain.Job, 0)
	for i := range jobs {
		if matchesSearch(&jobs[i], search) {
			matches = append(matches, jobs[i])
		}
	}
	return matches, nil
}

func matchesSearch(job *domain.Job, search *domain.SavedSearch) bool {
	if kw := strings.TrimSpace(search.Keyword); kw != "" && !matchKeyword(job, kw) {
		return false
	}
	if loc := strings.TrimSpace(search.Location); loc != "" {
		if !strings.Contains(strings.ToLower(job.Location), strings.ToLower(loc)) {
			return false
		}
	}
	if cc := strings.TrimSpace(search.CountryCode); cc != "" {
		if !strings.EqualFold(job.CountryCode, cc) {
			return false
		}
	}
	if cat := strings.TrimSpace(search.Category); cat != "" && !containsFold(job.Categories, cat) {
		return false
	}
	if sport := strings.TrimSpace(search.Sport); sport != "" && !containsFold(job.Sports, sport) {
		return false
	}
	if lang := strings.TrimSpace(search.Language); lang != "" && !containsFold(job.Languages, lang) {
		return false
	}
	return true
}

// matchKeyword checks title, description and company name,
// case-insensitively.
func matchKeyword(job *domain.Job, keyword string) bool {
	kw := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(job.Title), kw) {
		return true
	}
	if strings.Contains(strings.ToLower(job.Description), kw) {
		return true
	}
	if job.CompanyName != nil && strings.Contains(strings.ToLower(*job.CompanyName), kw) {
		return true
	}
	return false
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// RunJobAlerts performs one scheduler pass: pick due searches, find postings
// newer than the last dispatch, send digests, and bump last_sent only for
// successful sends so a failed dispatch retries on the next pass.
func (uc *alertUsecase) RunJobAlerts(ctx context.Context, now time.Time) (*domain.AlertRunSummary, error) {
	searches, err := uc.savedSearchRepo.ListActive(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	summary := &domain.AlertRunSummary{SearchesConsidered: len(searches)}
	for i := range searches {
		search := &searches[i]
		if !searchDue(search, now) {
			continue
		}
		summary.SearchesDue++

		matches, err := uc.FindMatches(ctx, search, search.LastSent)
		if err != nil {
			logger.Log.Error("alert match pass failed", "search_id", search.ID, "error", err)
			summary.DispatchFailures++
			continue
		}
		if len(matches) == 0 {
			continue
		}

		owner, err := uc.userRepo.GetByID(ctx, search.UserID)
		if err != nil {
			logger.Log.Warn("alert owner lookup failed", "search_id", search.ID, "error", err)
			summary.DispatchFailures++
			continue
		}

		digest := make([]domain.JobSummary, 0, len(matches))
		for j := range matches {
			digest = append(digest, matches[j].Summary())
		}
		data := email.AlertEmailData{
			Keyword: search.Keyword,
			Jobs:    digest,
		}
		if err := uc.mailer.SendJobAlert(owner.Email, data); err != nil {
			logger.Log.Warn("alert dispatch failed", "search_id", search.ID, "error", err)
			summary.DispatchFailures++
			continue
		}
		summary.NotificationsSent++

		if err := uc.savedSearchRepo.UpdateLastSent(ctx, search.ID, now); err != nil {
			logger.Log.Error("last_sent update failed", "search_id", search.ID, "error", err)
		}
	}
	return summary, nil
}

// searchDue applies the frequency window against last_sent. A never-sent
// search is always due.
func searchDue(search *domain.SavedSearch, now time.Time) bool {
	var window time.Duration
	switch search.Frequency {
	case domain.AlertFrequencyDaily:
		window = 24 * time.Hour
	case domain.AlertFrequencyWeekly:
		window = 7 * 24 * time.Hour
	default:
		return false
	}
	if search.LastSent == nil {
		return true
	}
	return now.Sub(*search.LastSent) >= window
}
