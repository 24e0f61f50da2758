package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
)

// Notifier is the outbound notification sink. Dispatch is fire-and-forget:
// a failed send is logged and never fails the business mutation.
type Notifier interface {
	SendWithdrawalNotice(to string, data email.WithdrawalEmailData) error
	SendContactMessage(to string, data email.ContactEmailData) error
}

type interactionUsecase struct {
	interactionRepo domain.InteractionRepository
	jobRepo         domain.JobRepository
	candidateRepo   domain.CandidateRepository
	userRepo        domain.UserRepository
	notifier        Notifier
}

// NewInteractionUsecase creates the applicant tracking usecase
func NewInteractionUsecase(
	interactionRepo domain.InteractionRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	userRepo domain.UserRepository,
	notifier Notifier,
) domain.InteractionUsecase {
	return &interactionUsecase{
		interactionRepo: interactionRepo,
		jobRepo:         jobRepo,
		candidateRepo:   candidateRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// storageErr maps repository failures that are not domain conditions into
// apperror values. Timeouts become a retryable Unavailable, never a silent
// success or a generic fault.
func storageErr(err error) *apperror.AppError {
	if errors.Is(err, domain.ErrTimeout) {
		return apperror.Unavailable(err)
	}
	return apperror.Internal(err)
}

// ApplyToJob creates a candidate-initiated interaction with status "new".
// Unpublished jobs are NotFound to applicants, not Forbidden, so their
// existence does not leak.
func (uc *interactionUsecase) ApplyToJob(ctx context.Context, candidateID string, jobID int64) (*domain.InteractionRecord, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, storageErr(err)
	}
	if !job.Published() {
		return nil, apperror.NotFound("Job not found")
	}
	if job.RecruiterUserID == nil {
		return nil, apperror.PreconditionFailed("This job has no assigned recruiter and cannot accept applications")
	}

	// Fast-path duplicate check. The unique index decides races; a
	// withdrawn record still blocks re-application because the constraint
	// is on the pair, not on active applications.
	if _, err := uc.interactionRepo.FindByJobAndCandidate(ctx, jobID, candidateID); err == nil {
		return nil, apperror.Duplicate("You have already applied to this job")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, storageErr(err)
	}

	now := time.Now()
	rec := &domain.InteractionRecord{
		JobID:          &jobID,
		RecruiterID:    *job.RecruiterUserID,
		CandidateID:    candidateID,
		Origin:         domain.InteractionOriginCandidate,
		Status:         domain.InteractionStatusNew,
		AppliedAt:      now,
		LastActivityAt: now,
	}
	if err := uc.interactionRepo.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateInteraction) {
			// Lost the creation race; report it like the fast path did.
			return nil, apperror.Duplicate("You have already applied to this job")
		}
		return nil, storageErr(err)
	}
	return uc.reload(ctx, rec)
}

// ContactCandidate creates a recruiter-initiated interaction with status
// "contacted". When jobID is omitted it is resolved from the recruiter's
// published postings: one match auto-assigns, several return AmbiguousJob
// with the candidate set, none fails the precondition.
func (uc *interactionUsecase) ContactCandidate(ctx context.Context, recruiterID, candidateID string, jobID *int64) (*domain.InteractionRecord, error) {
	profile, err := uc.candidateRepo.GetByUserID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, storageErr(err)
	}
	if !profile.Discoverable {
		return nil, apperror.NotFound("Candidate not found")
	}

	// One recruiter-initiated record per (recruiter, candidate) pair. An
	// application the candidate made on their own does not count against it.
	if _, err := uc.interactionRepo.FindRecruiterContact(ctx, recruiterID, candidateID); err == nil {
		return nil, apperror.Duplicate("You have already contacted this candidate")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, storageErr(err)
	}

	resolvedJobID, err := uc.resolveContactJob(ctx, recruiterID, jobID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &domain.InteractionRecord{
		JobID:          resolvedJobID,
		RecruiterID:    recruiterID,
		CandidateID:    candidateID,
		Origin:         domain.InteractionOriginRecruiter,
		Status:         domain.InteractionStatusContacted,
		AppliedAt:      now,
		LastActivityAt: now,
	}
	if err := uc.interactionRepo.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateInteraction) {
			return nil, apperror.Duplicate("You have already contacted this candidate")
		}
		return nil, storageErr(err)
	}
	return uc.reload(ctx, rec)
}

func (uc *interactionUsecase) resolveContactJob(ctx context.Context, recruiterID string, jobID *int64) (*int64, error) {
	if jobID != nil {
		job, err := uc.jobRepo.GetByID(ctx, *jobID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.NotFound("Job not found")
			}
			return nil, storageErr(err)
		}
		if !job.Published() {
			return nil, apperror.NotFound("Job not found")
		}
		if job.RecruiterUserID == nil || *job.RecruiterUserID != recruiterID {
			return nil, apperror.Forbidden("You can only contact candidates about your own job postings")
		}
		return jobID, nil
	}

	jobs, err := uc.jobRepo.FetchPublishedByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, storageErr(err)
	}
	switch len(jobs) {
	case 0:
		return nil, apperror.PreconditionFailed("You need at least one published job posting to contact candidates")
	case 1:
		return &jobs[0].ID, nil
	default:
		summaries := make([]domain.JobSummary, 0, len(jobs))
		for i := range jobs {
			summaries = append(summaries, jobs[i].Summary())
		}
		return nil, apperror.AmbiguousJob("Multiple published postings found; specify which job this contact is about", summaries)
	}
}

// SetStatus applies a recruiter/admin status transition. Any-to-any moves
// are allowed among non-terminal states; withdrawn is terminal and the
// check is re-validated at write time inside the repository.
func (uc *interactionUsecase) SetStatus(ctx context.Context, actorID, role, recordID, newStatus string) (*domain.InteractionRecord, error) {
	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		return nil, apperror.Forbidden("Only recruiters can update application status")
	}
	if !domain.ValidInteractionStatus(newStatus) {
		return nil, apperror.BadRequest("Invalid status. Must be: new, contacted, interviewed, offered, rejected, or withdrawn")
	}

	rec, err := uc.getOwned(ctx, actorID, role, recordID)
	if err != nil {
		return nil, err
	}
	if rec.Withdrawn() {
		return nil, apperror.AlreadyTerminal("This application has been withdrawn and can no longer change status")
	}

	var withdrawnAt *time.Time
	if newStatus == domain.InteractionStatusWithdrawn {
		now := time.Now()
		withdrawnAt = &now
	}

	updated, err := uc.interactionRepo.UpdateStatus(ctx, recordID, newStatus, withdrawnAt)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyWithdrawn) {
			return nil, apperror.AlreadyTerminal("This application has been withdrawn and can no longer change status")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, storageErr(err)
	}
	return updated, nil
}

// Withdraw is the candidate's one-way terminal transition. The repository
// performs a conditional update so a duplicate-withdrawal race produces
// exactly one success and one AlreadyWithdrawn.
func (uc *interactionUsecase) Withdraw(ctx context.Context, candidateID, recordID string) (*domain.InteractionRecord, error) {
	rec, err := uc.interactionRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, storageErr(err)
	}
	if rec.CandidateID != candidateID {
		return nil, apperror.Forbidden("You can only withdraw your own applications")
	}
	if rec.Withdrawn() {
		return nil, apperror.AlreadyWithdrawn("This application has already been withdrawn")
	}

	updated, err := uc.interactionRepo.Withdraw(ctx, recordID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyWithdrawn) {
			return nil, apperror.AlreadyWithdrawn("This application has already been withdrawn")
		}
		return nil, storageErr(err)
	}

	uc.notifyWithdrawal(updated)
	return updated, nil
}

func (uc *interactionUsecase) notifyWithdrawal(rec *domain.InteractionRecord) {
	if uc.notifier == nil || rec.RecruiterEmail == nil {
		return
	}
	data := email.WithdrawalEmailData{}
	if rec.RecruiterName != nil {
		data.RecruiterName = *rec.RecruiterName
	}
	if rec.CandidateName != nil {
		data.CandidateName = *rec.CandidateName
	}
	if rec.JobTitle != nil {
		data.JobTitle = *rec.JobTitle
	}
	if err := uc.notifier.SendWithdrawalNotice(*rec.RecruiterEmail, data); err != nil {
		logger.Log.Warn("withdrawal notification failed", "record_id", rec.ID, "error", err)
	}
}

// GetRecord returns one record to its recruiter, its candidate, or an
// admin. A recruiter read stamps viewed_at on first view (write-once).
func (uc *interactionUsecase) GetRecord(ctx context.Context, actorID, role, recordID string) (*domain.InteractionRecord, error) {
	rec, err := uc.interactionRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, storageErr(err)
	}

	switch role {
	case domain.RoleJobSeeker:
		if rec.CandidateID != actorID {
			return nil, apperror.Forbidden("You can only view your own applications")
		}
	case domain.RoleRecruiter:
		if rec.RecruiterID != actorID {
			return nil, apperror.Forbidden("You can only view your own candidates")
		}
		if rec.ViewedAt == nil {
			now := time.Now()
			if err := uc.interactionRepo.MarkViewed(ctx, recordID, now); err != nil {
				logger.Log.Warn("mark viewed failed", "record_id", recordID, "error", err)
			} else {
				rec.ViewedAt = &now
			}
		}
	}
	return rec, nil
}

func (uc *interactionUsecase) ListForRecruiter(ctx context.Context, recruiterID string) ([]domain.InteractionRecord, error) {
	records, err := uc.interactionRepo.ListByRecruiter(ctx, recruiterID, false)
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}

func (uc *interactionUsecase) ListForCandidate(ctx context.Context, candidateID string) ([]domain.InteractionRecord, error) {
	records, err := uc.interactionRepo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}

// CheckApplied reports whether the candidate already has a record for the
// job, returning it when present.
func (uc *interactionUsecase) CheckApplied(ctx context.Context, candidateID string, jobID int64) (bool, *domain.InteractionRecord, error) {
	rec, err := uc.interactionRepo.FindByJobAndCandidate(ctx, jobID, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, storageErr(err)
	}
	return true, rec, nil
}

// SetArchiveFlag flips the caller's own archive flag. Each party may only
// touch its own side; the flags never affect the state machine.
func (uc *interactionUsecase) SetArchiveFlag(ctx context.Context, actorID, role, recordID string, party domain.ArchiveParty, value bool) (*domain.InteractionRecord, error) {
	switch party {
	case domain.ArchiveByJobSeeker:
		if role != domain.RoleJobSeeker {
			return nil, apperror.Forbidden("Only the candidate can set their archive flag")
		}
	case domain.ArchiveByRecruiter:
		if role != domain.RoleRecruiter && role != domain.RoleAdmin {
			return nil, apperror.Forbidden("Only the recruiter can set their archive flag")
		}
	default:
		return nil, apperror.BadRequest("Unknown archive flag")
	}

	rec, err := uc.interactionRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, storageErr(err)
	}
	if party == domain.ArchiveByJobSeeker && rec.CandidateID != actorID {
		return nil, apperror.Forbidden("You can only archive your own applications")
	}
	if party == domain.ArchiveByRecruiter && role == domain.RoleRecruiter && rec.RecruiterID != actorID {
		return nil, apperror.Forbidden("You can only archive your own candidates")
	}

	updated, err := uc.interactionRepo.SetArchiveFlag(ctx, recordID, party, value)
	if err != nil {
		return nil, storageErr(err)
	}
	return updated, nil
}

// UpdateNotes writes the recruiter-private note fields. Job seekers can
// neither read nor write them.
func (uc *interactionUsecase) UpdateNotes(ctx context.Context, actorID, role, recordID string, recruiterNotes, internalNotes *string) (*domain.InteractionRecord, error) {
	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		return nil, apperror.Forbidden("Only recruiters can edit notes")
	}
	if _, err := uc.getOwned(ctx, actorID, role, recordID); err != nil {
		return nil, err
	}
	updated, err := uc.interactionRepo.UpdateNotes(ctx, recordID, recruiterNotes, internalNotes)
	if err != nil {
		return nil, storageErr(err)
	}
	return updated, nil
}

// ContactCandidateEmail relays a recruiter message to the candidate and
// bumps last_activity_at. The activity bump is the business mutation;
// dispatch failure is logged but does not undo it.
func (uc *interactionUsecase) ContactCandidateEmail(ctx context.Context, recruiterID, recordID, subject, message string) error {
	rec, err := uc.interactionRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return storageErr(err)
	}
	if rec.RecruiterID != recruiterID {
		return apperror.Forbidden("You can only contact your own candidates")
	}

	if err := uc.interactionRepo.TouchActivity(ctx, recordID, time.Now()); err != nil {
		return storageErr(err)
	}

	candidate, err := uc.userRepo.GetByID(ctx, rec.CandidateID)
	if err != nil {
		logger.Log.Warn("contact email skipped, candidate lookup failed", "record_id", recordID, "error", err)
		return nil
	}
	data := email.ContactEmailData{Subject: subject, Message: message}
	if rec.RecruiterName != nil {
		data.RecruiterName = *rec.RecruiterName
	}
	if rec.RecruiterEmail != nil {
		data.RecruiterEmail = *rec.RecruiterEmail
	}
	if uc.notifier != nil {
		if err := uc.notifier.SendContactMessage(candidate.Email, data); err != nil {
			logger.Log.Warn("contact email dispatch failed", "record_id", recordID, "error", err)
		}
	}
	return nil
}

// getOwned loads a record and checks recruiter ownership; admins skip the
// ownership check.
func (uc *interactionUsecase) getOwned(ctx context.Context, actorID, role, recordID string) (*domain.InteractionRecord, error) {
	rec, err := uc.interactionRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, storageErr(err)
	}
	if role == domain.RoleRecruiter && rec.RecruiterID != actorID {
		return nil, apperror.Forbidden("You can only manage your own candidates")
	}
	return rec, nil
}

// reload refetches a freshly created record so joined display fields are
// populated for the response.
func (uc *interactionUsecase) reload(ctx context.Context, rec *domain.InteractionRecord) (*domain.InteractionRecord, error) {
	full, err := uc.interactionRepo.GetByID(ctx, rec.ID)
	if err != nil {
		// The create succeeded; fall back to the sparse record.
		return rec, nil
	}
	return full, nil
}
