package usecase

import (
	"context"
	"errors"
	"strconv"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type adminUsecase struct {
	jobRepo         domain.JobRepository
	companyRepo     domain.CompanyRepository
	userRepo        domain.UserRepository
	candidateRepo   domain.CandidateRepository
	cvRepo          domain.CVRepository
	interactionRepo domain.InteractionRepository
	savedSearchRepo domain.SavedSearchRepository
	audit           domain.AuditLogger
}

// NewAdminUsecase creates the admin entity lifecycle usecase
func NewAdminUsecase(
	jobRepo domain.JobRepository,
	companyRepo domain.CompanyRepository,
	userRepo domain.UserRepository,
	candidateRepo domain.CandidateRepository,
	cvRepo domain.CVRepository,
	interactionRepo domain.InteractionRepository,
	savedSearchRepo domain.SavedSearchRepository,
	audit domain.AuditLogger,
) domain.AdminUsecase {
	return &adminUsecase{
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		candidateRepo:   candidateRepo,
		cvRepo:          cvRepo,
		interactionRepo: interactionRepo,
		savedSearchRepo: savedSearchRepo,
		audit:           audit,
	}
}

func requireAdmin(role string) error {
	if role != domain.RoleAdmin {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}

// DeleteJob removes a posting. Applications referencing it survive with a
// detached job_id; the count of detached records goes into the audit entry.
func (uc *adminUsecase) DeleteJob(ctx context.Context, role string, jobID int64, reason string) error {
	if err := requireAdmin(role); err != nil {
		return err
	}
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return storageErr(err)
	}

	detached, err := uc.interactionRepo.CountByJobID(ctx, jobID)
	if err != nil {
		return storageErr(err)
	}

	if err := uc.jobRepo.Delete(ctx, jobID); err != nil {
		return storageErr(err)
	}

	uc.audit.Record(ctx, domain.AuditActionDelete, domain.EntityTypeJob, strconv.FormatInt(jobID, 10),
		&domain.AuditChanges{Before: map[string]interface{}{
			"title":      job.Title,
			"company_id": job.CompanyID,
			"location":   job.Location,
		}},
		reason,
		map[string]interface{}{"applicationsDetached": detached},
	)
	return nil
}

// DeleteCompany removes the company and, through the FK cascade, its jobs
// in one atomic statement, then writes one audit entry carrying the cascade
// count. A failed delete leaves the company and every job in place.
func (uc *adminUsecase) DeleteCompany(ctx context.Context, role string, companyID int64, reason string) error {
	if err := requireAdmin(role); err != nil {
		return err
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Company not found")
		}
		return storageErr(err)
	}

	jobsDeleted, err := uc.jobRepo.CountByCompanyID(ctx, companyID)
	if err != nil {
		return storageErr(err)
	}
	if err := uc.companyRepo.Delete(ctx, companyID); err != nil {
		return storageErr(err)
	}

	uc.audit.Record(ctx, domain.AuditActionDelete, domain.EntityTypeCompany, strconv.FormatInt(companyID, 10),
		&domain.AuditChanges{Before: map[string]interface{}{
			"name":     company.Name,
			"location": company.Location,
		}},
		reason,
		map[string]interface{}{"jobsDeleted": jobsDeleted},
	)
	return nil
}

// DeleteUser removes the account and everything hanging off it: profile,
// CVs, interactions on either side, saved searches.
func (uc *adminUsecase) DeleteUser(ctx context.Context, role, userID, reason string) error {
	if err := requireAdmin(role); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return storageErr(err)
	}

	var cascade domain.CascadeResult

	if err := uc.candidateRepo.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return storageErr(err)
	}
	if cascade.CVsDeleted, err = uc.cvRepo.DeleteByUserID(ctx, userID); err != nil {
		return storageErr(err)
	}

	asCandidate, err := uc.interactionRepo.DeleteByCandidate(ctx, userID)
	if err != nil {
		return storageErr(err)
	}
	asRecruiter, err := uc.interactionRepo.DeleteByRecruiter(ctx, userID)
	if err != nil {
		return storageErr(err)
	}
	cascade.InteractionsDeleted = asCandidate + asRecruiter

	if cascade.SavedSearchesDeleted, err = uc.savedSearchRepo.DeleteByUser(ctx, userID); err != nil {
		return storageErr(err)
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return storageErr(err)
	}

	uc.audit.Record(ctx, domain.AuditActionDelete, domain.EntityTypeUser, userID,
		&domain.AuditChanges{Before: map[string]interface{}{
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		}},
		reason,
		map[string]interface{}{
			"cvsDeleted":           cascade.CVsDeleted,
			"interactionsDeleted":  cascade.InteractionsDeleted,
			"savedSearchesDeleted": cascade.SavedSearchesDeleted,
		},
	)
	return nil
}

func (uc *adminUsecase) DeleteCV(ctx context.Context, role string, cvID int64, reason string) error {
	if err := requireAdmin(role); err != nil {
		return err
	}
	cv, err := uc.cvRepo.GetByID(ctx, cvID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("CV not found")
		}
		return storageErr(err)
	}

	if err := uc.cvRepo.Delete(ctx, cvID); err != nil {
		return storageErr(err)
	}

	uc.audit.Record(ctx, domain.AuditActionDelete, domain.EntityTypeCV, strconv.FormatInt(cvID, 10),
		&domain.AuditChanges{Before: map[string]interface{}{
			"user_id":   cv.UserID,
			"file_name": cv.FileName,
		}},
		reason, nil,
	)
	return nil
}
