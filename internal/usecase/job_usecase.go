package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

// NewJobUsecase creates a new job usecase
func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

// GetJobDetails returns a published posting. Unpublished postings read as
// NotFound so their existence does not leak.
func (uc *jobUsecase) GetJobDetails(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, storageErr(err)
	}
	if !job.Published() {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

func (uc *jobUsecase) ListPublicJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	jobs, total, err := uc.jobRepo.FetchPublic(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return jobs, total, nil
}
