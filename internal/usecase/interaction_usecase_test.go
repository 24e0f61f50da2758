package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/email"
)

func strPtr(s string) *string { return &s }

func assertKind(t *testing.T, err error, kind apperror.Kind) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, kind, appErr.Kind)
	}
	return appErr
}

func newInteractionUC(ir *MockInteractionRepo, jr *MockJobRepo, cr *MockCandidateRepo, ur *MockUserRepo, n *MockNotifier) domain.InteractionUsecase {
	return usecase.NewInteractionUsecase(ir, jr, cr, ur, n)
}

func publishedJob(id int64, recruiterID string) *domain.Job {
	return &domain.Job{ID: id, Title: "Head Coach", RecruiterUserID: &recruiterID}
}

func TestApplyToJob(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a record with status new and origin candidate", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(interactionRepo, jobRepo, new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		jobRepo.On("GetByID", ctx, int64(10)).Return(publishedJob(10, "rec-user"), nil)
		interactionRepo.On("FindByJobAndCandidate", ctx, int64(10), "cand-user").Return(nil, domain.ErrNotFound)
		interactionRepo.On("Create", ctx, mock.AnythingOfType("*domain.InteractionRecord")).
			Run(func(args mock.Arguments) {
				rec := args.Get(1).(*domain.InteractionRecord)
				rec.ID = "rec-1"
			}).Return(nil)
		interactionRepo.On("GetByID", ctx, "rec-1").Return(&domain.InteractionRecord{
			ID: "rec-1", Status: domain.InteractionStatusNew, Origin: domain.InteractionOriginCandidate,
		}, nil)

		rec, err := uc.ApplyToJob(ctx, "cand-user", 10)
		assert.NoError(t, err)
		assert.Equal(t, domain.InteractionStatusNew, rec.Status)
		assert.Equal(t, domain.InteractionOriginCandidate, rec.Origin)

		created := interactionRepo.Calls[1].Arguments.Get(1).(*domain.InteractionRecord)
		assert.Equal(t, "rec-user", created.RecruiterID)
		assert.Equal(t, domain.InteractionStatusNew, created.Status)
	})

	t.Run("rejects a second application to the same job", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(interactionRepo, jobRepo, new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		jobRepo.On("GetByID", ctx, int64(10)).Return(publishedJob(10, "rec-user"), nil)
		interactionRepo.On("FindByJobAndCandidate", ctx, int64(10), "cand-user").
			Return(&domain.InteractionRecord{ID: "existing"}, nil)

		_, err := uc.ApplyToJob(ctx, "cand-user", 10)
		assertKind(t, err, apperror.KindDuplicateInteraction)
		interactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("withdrawn application still blocks re-application", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(interactionRepo, jobRepo, new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		withdrawnAt := time.Now()
		jobRepo.On("GetByID", ctx, int64(10)).Return(publishedJob(10, "rec-user"), nil)
		interactionRepo.On("FindByJobAndCandidate", ctx, int64(10), "cand-user").
			Return(&domain.InteractionRecord{ID: "old", Status: domain.InteractionStatusWithdrawn, WithdrawnAt: &withdrawnAt}, nil)

		_, err := uc.ApplyToJob(ctx, "cand-user", 10)
		assertKind(t, err, apperror.KindDuplicateInteraction)
	})

	t.Run("maps a lost creation race to the same duplicate error", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(interactionRepo, jobRepo, new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		jobRepo.On("GetByID", ctx, int64(10)).Return(publishedJob(10, "rec-user"), nil)
		interactionRepo.On("FindByJobAndCandidate", ctx, int64(10), "cand-user").Return(nil, domain.ErrNotFound)
		interactionRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateInteraction)

		_, err := uc.ApplyToJob(ctx, "cand-user", 10)
		assertKind(t, err, apperror.KindDuplicateInteraction)
	})

	t.Run("unpublished job reads as not found", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(new(MockInteractionRepo), jobRepo, new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		recruiterID := "rec-user"
		jobRepo.On("GetByID", ctx, int64(10)).Return(&domain.Job{ID: 10, Unpublished: true, RecruiterUserID: &recruiterID}, nil)

		_, err := uc.ApplyToJob(ctx, "cand-user", 10)
		assertKind(t, err, apperror.KindNotFound)
	})

	t.Run("job without a recruiter fails the precondition", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(new(MockInteractionRepo), jobRepo, new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		jobRepo.On("GetByID", ctx, int64(10)).Return(&domain.Job{ID: 10}, nil)

		_, err := uc.ApplyToJob(ctx, "cand-user", 10)
		assertKind(t, err, apperror.KindPreconditionFailed)
	})

	t.Run("storage timeout maps to unavailable", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(new(MockInteractionRepo), jobRepo, new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		jobRepo.On("GetByID", ctx, int64(10)).Return(nil, domain.ErrTimeout)

		_, err := uc.ApplyToJob(ctx, "cand-user", 10)
		appErr := assertKind(t, err, apperror.KindUnavailable)
		assert.Equal(t, 503, appErr.Code)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	base := func() *domain.InteractionRecord {
		return &domain.InteractionRecord{
			ID:             "rec-1",
			CandidateID:    "cand-user",
			RecruiterID:    "rec-user",
			Status:         domain.InteractionStatusInterviewed,
			RecruiterEmail: strPtr("recruiter@example.com"),
			RecruiterName:  strPtr("Rita"),
			CandidateName:  strPtr("Carl"),
			JobTitle:       strPtr("Head Coach"),
		}
	}

	t.Run("withdraws and notifies the recruiter", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		notifier := new(MockNotifier)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), notifier)

		rec := base()
		withdrawn := base()
		withdrawn.Status = domain.InteractionStatusWithdrawn
		now := time.Now()
		withdrawn.WithdrawnAt = &now

		interactionRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)
		interactionRepo.On("Withdraw", ctx, "rec-1", mock.AnythingOfType("time.Time")).Return(withdrawn, nil)
		notifier.On("SendWithdrawalNotice", "recruiter@example.com", mock.AnythingOfType("email.WithdrawalEmailData")).Return(nil)

		out, err := uc.Withdraw(ctx, "cand-user", "rec-1")
		assert.NoError(t, err)
		assert.True(t, out.Withdrawn())
		notifier.AssertCalled(t, "SendWithdrawalNotice", "recruiter@example.com", email.WithdrawalEmailData{
			RecruiterName: "Rita", CandidateName: "Carl", JobTitle: "Head Coach",
		})
	})

	t.Run("a failed notification does not fail the withdrawal", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		notifier := new(MockNotifier)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), notifier)

		withdrawn := base()
		withdrawn.Status = domain.InteractionStatusWithdrawn

		interactionRepo.On("GetByID", ctx, "rec-1").Return(base(), nil)
		interactionRepo.On("Withdraw", ctx, "rec-1", mock.Anything).Return(withdrawn, nil)
		notifier.On("SendWithdrawalNotice", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		_, err := uc.Withdraw(ctx, "cand-user", "rec-1")
		assert.NoError(t, err)
	})

	t.Run("only the owning candidate may withdraw", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		interactionRepo.On("GetByID", ctx, "rec-1").Return(base(), nil)

		_, err := uc.Withdraw(ctx, "someone-else", "rec-1")
		assertKind(t, err, apperror.KindForbidden)
	})

	t.Run("double withdrawal is rejected", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		rec := base()
		rec.Status = domain.InteractionStatusWithdrawn

		interactionRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)

		_, err := uc.Withdraw(ctx, "cand-user", "rec-1")
		assertKind(t, err, apperror.KindAlreadyWithdrawn)
		interactionRepo.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing the withdrawal race maps to already withdrawn", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		interactionRepo.On("GetByID", ctx, "rec-1").Return(base(), nil)
		interactionRepo.On("Withdraw", ctx, "rec-1", mock.Anything).Return(nil, domain.ErrAlreadyWithdrawn)

		_, err := uc.Withdraw(ctx, "cand-user", "rec-1")
		assertKind(t, err, apperror.KindAlreadyWithdrawn)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	active := func() *domain.InteractionRecord {
		return &domain.InteractionRecord{ID: "rec-1", RecruiterID: "rec-user", CandidateID: "cand-user", Status: domain.InteractionStatusNew}
	}

	t.Run("job seekers cannot set status", func(t *testing.T) {
		uc := newInteractionUC(new(MockInteractionRepo), new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		_, err := uc.SetStatus(ctx, "cand-user", domain.RoleJobSeeker, "rec-1", domain.InteractionStatusInterviewed)
		assertKind(t, err, apperror.KindForbidden)
	})

	t.Run("unknown status is a bad request", func(t *testing.T) {
		uc := newInteractionUC(new(MockInteractionRepo), new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		_, err := uc.SetStatus(ctx, "rec-user", domain.RoleRecruiter, "rec-1", "hired")
		assertKind(t, err, apperror.KindBadRequest)
	})

	t.Run("non-terminal transitions are unrestricted", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		// offered back to new: allowed
		rec := active()
		rec.Status = domain.InteractionStatusOffered
		updated := active()

		interactionRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)
		interactionRepo.On("UpdateStatus", ctx, "rec-1", domain.InteractionStatusNew, (*time.Time)(nil)).Return(updated, nil)

		out, err := uc.SetStatus(ctx, "rec-user", domain.RoleRecruiter, "rec-1", domain.InteractionStatusNew)
		assert.NoError(t, err)
		assert.Equal(t, domain.InteractionStatusNew, out.Status)
	})

	t.Run("withdrawn records refuse further transitions", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		rec := active()
		rec.Status = domain.InteractionStatusWithdrawn

		interactionRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)

		_, err := uc.SetStatus(ctx, "rec-user", domain.RoleRecruiter, "rec-1", domain.InteractionStatusRejected)
		assertKind(t, err, apperror.KindAlreadyTerminal)
		interactionRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("write-time terminal check wins a concurrent withdrawal", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		interactionRepo.On("GetByID", ctx, "rec-1").Return(active(), nil)
		interactionRepo.On("UpdateStatus", ctx, "rec-1", domain.InteractionStatusRejected, (*time.Time)(nil)).
			Return(nil, domain.ErrAlreadyWithdrawn)

		_, err := uc.SetStatus(ctx, "rec-user", domain.RoleRecruiter, "rec-1", domain.InteractionStatusRejected)
		assertKind(t, err, apperror.KindAlreadyTerminal)
	})

	t.Run("setting withdrawn stamps withdrawn_at", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		updated := active()
		updated.Status = domain.InteractionStatusWithdrawn

		interactionRepo.On("GetByID", ctx, "rec-1").Return(active(), nil)
		interactionRepo.On("UpdateStatus", ctx, "rec-1", domain.InteractionStatusWithdrawn, mock.MatchedBy(func(at *time.Time) bool {
			return at != nil
		})).Return(updated, nil)

		_, err := uc.SetStatus(ctx, "rec-user", domain.RoleRecruiter, "rec-1", domain.InteractionStatusWithdrawn)
		assert.NoError(t, err)
	})

	t.Run("recruiters cannot touch another recruiter's record", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		interactionRepo.On("GetByID", ctx, "rec-1").Return(active(), nil)

		_, err := uc.SetStatus(ctx, "other-recruiter", domain.RoleRecruiter, "rec-1", domain.InteractionStatusRejected)
		assertKind(t, err, apperror.KindForbidden)
	})
}

func TestContactCandidate(t *testing.T) {
	ctx := context.Background()

	discoverable := &domain.CandidateProfile{UserID: "cand-user", FullName: "Carl", Discoverable: true}

	t.Run("hidden candidate reads as not found", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := newInteractionUC(new(MockInteractionRepo), new(MockJobRepo), candidateRepo, new(MockUserRepo), new(MockNotifier))

		candidateRepo.On("GetByUserID", ctx, "cand-user").Return(&domain.CandidateProfile{UserID: "cand-user"}, nil)

		_, err := uc.ContactCandidate(ctx, "rec-user", "cand-user", nil)
		assertKind(t, err, apperror.KindNotFound)
	})

	t.Run("one relationship per recruiter and candidate pair", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		candidateRepo := new(MockCandidateRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), candidateRepo, new(MockUserRepo), new(MockNotifier))

		candidateRepo.On("GetByUserID", ctx, "cand-user").Return(discoverable, nil)
		interactionRepo.On("FindRecruiterContact", ctx, "rec-user", "cand-user").
			Return(&domain.InteractionRecord{ID: "existing"}, nil)

		_, err := uc.ContactCandidate(ctx, "rec-user", "cand-user", nil)
		assertKind(t, err, apperror.KindDuplicateInteraction)
	})

	t.Run("a candidate's own application does not block the contact", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		candidateRepo := new(MockCandidateRepo)
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(interactionRepo, jobRepo, candidateRepo, new(MockUserRepo), new(MockNotifier))

		candidateRepo.On("GetByUserID", ctx, "cand-user").Return(discoverable, nil)
		// The lookup is origin-scoped to recruiter-initiated records, like
		// the unique index, so an application the candidate made to one of
		// this recruiter's jobs finds nothing here.
		interactionRepo.On("FindRecruiterContact", ctx, "rec-user", "cand-user").Return(nil, domain.ErrNotFound)
		jobRepo.On("FetchPublishedByRecruiter", ctx, "rec-user").Return([]domain.Job{{ID: 7, Title: "Head Coach"}}, nil)
		interactionRepo.On("Create", ctx, mock.AnythingOfType("*domain.InteractionRecord")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.InteractionRecord).ID = "rec-3"
			}).Return(nil)
		interactionRepo.On("GetByID", ctx, "rec-3").Return(&domain.InteractionRecord{
			ID: "rec-3", Status: domain.InteractionStatusContacted, Origin: domain.InteractionOriginRecruiter,
		}, nil)

		out, err := uc.ContactCandidate(ctx, "rec-user", "cand-user", nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.InteractionOriginRecruiter, out.Origin)
	})

	t.Run("no published postings fails the precondition", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		candidateRepo := new(MockCandidateRepo)
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(interactionRepo, jobRepo, candidateRepo, new(MockUserRepo), new(MockNotifier))

		candidateRepo.On("GetByUserID", ctx, "cand-user").Return(discoverable, nil)
		interactionRepo.On("FindRecruiterContact", ctx, "rec-user", "cand-user").Return(nil, domain.ErrNotFound)
		jobRepo.On("FetchPublishedByRecruiter", ctx, "rec-user").Return([]domain.Job{}, nil)

		_, err := uc.ContactCandidate(ctx, "rec-user", "cand-user", nil)
		assertKind(t, err, apperror.KindPreconditionFailed)
	})

	t.Run("a single posting is auto-assigned", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		candidateRepo := new(MockCandidateRepo)
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(interactionRepo, jobRepo, candidateRepo, new(MockUserRepo), new(MockNotifier))

		candidateRepo.On("GetByUserID", ctx, "cand-user").Return(discoverable, nil)
		interactionRepo.On("FindRecruiterContact", ctx, "rec-user", "cand-user").Return(nil, domain.ErrNotFound)
		jobRepo.On("FetchPublishedByRecruiter", ctx, "rec-user").Return([]domain.Job{{ID: 7, Title: "Head Coach"}}, nil)
		interactionRepo.On("Create", ctx, mock.AnythingOfType("*domain.InteractionRecord")).
			Run(func(args mock.Arguments) {
				rec := args.Get(1).(*domain.InteractionRecord)
				rec.ID = "rec-2"
			}).Return(nil)
		interactionRepo.On("GetByID", ctx, "rec-2").Return(&domain.InteractionRecord{
			ID: "rec-2", Status: domain.InteractionStatusContacted, Origin: domain.InteractionOriginRecruiter,
		}, nil)

		out, err := uc.ContactCandidate(ctx, "rec-user", "cand-user", nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.InteractionStatusContacted, out.Status)

		created := interactionRepo.Calls[1].Arguments.Get(1).(*domain.InteractionRecord)
		assert.NotNil(t, created.JobID)
		assert.Equal(t, int64(7), *created.JobID)
		assert.Equal(t, domain.InteractionOriginRecruiter, created.Origin)
	})

	t.Run("multiple postings require disambiguation", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		candidateRepo := new(MockCandidateRepo)
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(interactionRepo, jobRepo, candidateRepo, new(MockUserRepo), new(MockNotifier))

		candidateRepo.On("GetByUserID", ctx, "cand-user").Return(discoverable, nil)
		interactionRepo.On("FindRecruiterContact", ctx, "rec-user", "cand-user").Return(nil, domain.ErrNotFound)
		jobRepo.On("FetchPublishedByRecruiter", ctx, "rec-user").Return([]domain.Job{
			{ID: 7, Title: "Head Coach"}, {ID: 8, Title: "Assistant Coach"},
		}, nil)

		_, err := uc.ContactCandidate(ctx, "rec-user", "cand-user", nil)
		appErr := assertKind(t, err, apperror.KindAmbiguousJob)
		jobs, ok := appErr.Details.([]domain.JobSummary)
		assert.True(t, ok)
		assert.Len(t, jobs, 2)
		interactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("an explicit job must belong to the recruiter", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		candidateRepo := new(MockCandidateRepo)
		jobRepo := new(MockJobRepo)
		uc := newInteractionUC(interactionRepo, jobRepo, candidateRepo, new(MockUserRepo), new(MockNotifier))

		jobID := int64(9)
		candidateRepo.On("GetByUserID", ctx, "cand-user").Return(discoverable, nil)
		interactionRepo.On("FindRecruiterContact", ctx, "rec-user", "cand-user").Return(nil, domain.ErrNotFound)
		jobRepo.On("GetByID", ctx, jobID).Return(publishedJob(9, "other-recruiter"), nil)

		_, err := uc.ContactCandidate(ctx, "rec-user", "cand-user", &jobID)
		assertKind(t, err, apperror.KindForbidden)
	})
}

func TestGetRecord(t *testing.T) {
	ctx := context.Background()

	rec := func() *domain.InteractionRecord {
		return &domain.InteractionRecord{ID: "rec-1", RecruiterID: "rec-user", CandidateID: "cand-user"}
	}

	t.Run("first recruiter view stamps viewed_at", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		interactionRepo.On("GetByID", ctx, "rec-1").Return(rec(), nil)
		interactionRepo.On("MarkViewed", ctx, "rec-1", mock.AnythingOfType("time.Time")).Return(nil)

		out, err := uc.GetRecord(ctx, "rec-user", domain.RoleRecruiter, "rec-1")
		assert.NoError(t, err)
		assert.NotNil(t, out.ViewedAt)
	})

	t.Run("later reads leave the original timestamp", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		firstView := time.Now().Add(-time.Hour)
		viewed := rec()
		viewed.ViewedAt = &firstView

		interactionRepo.On("GetByID", ctx, "rec-1").Return(viewed, nil)

		out, err := uc.GetRecord(ctx, "rec-user", domain.RoleRecruiter, "rec-1")
		assert.NoError(t, err)
		assert.Equal(t, firstView, *out.ViewedAt)
		interactionRepo.AssertNotCalled(t, "MarkViewed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a job seeker cannot read another candidate's record", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		interactionRepo.On("GetByID", ctx, "rec-1").Return(rec(), nil)

		_, err := uc.GetRecord(ctx, "someone-else", domain.RoleJobSeeker, "rec-1")
		assertKind(t, err, apperror.KindForbidden)
	})
}

func TestSetArchiveFlag(t *testing.T) {
	ctx := context.Background()

	rec := func() *domain.InteractionRecord {
		return &domain.InteractionRecord{ID: "rec-1", RecruiterID: "rec-user", CandidateID: "cand-user"}
	}

	t.Run("each party flips only its own flag", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		archived := rec()
		archived.ArchivedByJobSeeker = true

		interactionRepo.On("GetByID", ctx, "rec-1").Return(rec(), nil)
		interactionRepo.On("SetArchiveFlag", ctx, "rec-1", domain.ArchiveByJobSeeker, true).Return(archived, nil)

		out, err := uc.SetArchiveFlag(ctx, "cand-user", domain.RoleJobSeeker, "rec-1", domain.ArchiveByJobSeeker, true)
		assert.NoError(t, err)
		assert.True(t, out.ArchivedByJobSeeker)
		assert.False(t, out.ArchivedByRecruiter)
	})

	t.Run("a job seeker cannot flip the recruiter's flag", func(t *testing.T) {
		uc := newInteractionUC(new(MockInteractionRepo), new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		_, err := uc.SetArchiveFlag(ctx, "cand-user", domain.RoleJobSeeker, "rec-1", domain.ArchiveByRecruiter, true)
		assertKind(t, err, apperror.KindForbidden)
	})

	t.Run("a recruiter cannot flip the job seeker's flag", func(t *testing.T) {
		uc := newInteractionUC(new(MockInteractionRepo), new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		_, err := uc.SetArchiveFlag(ctx, "rec-user", domain.RoleRecruiter, "rec-1", domain.ArchiveByJobSeeker, true)
		assertKind(t, err, apperror.KindForbidden)
	})
}

func TestCheckApplied(t *testing.T) {
	ctx := context.Background()

	t.Run("absent record reports false without error", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		interactionRepo.On("FindByJobAndCandidate", ctx, int64(10), "cand-user").Return(nil, domain.ErrNotFound)

		applied, rec, err := uc.CheckApplied(ctx, "cand-user", 10)
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.Nil(t, rec)
	})

	t.Run("existing record is returned", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepo)
		uc := newInteractionUC(interactionRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotifier))

		interactionRepo.On("FindByJobAndCandidate", ctx, int64(10), "cand-user").
			Return(&domain.InteractionRecord{ID: "rec-1"}, nil)

		applied, rec, err := uc.CheckApplied(ctx, "cand-user", 10)
		assert.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, "rec-1", rec.ID)
	})
}
