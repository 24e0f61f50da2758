package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type savedSearchUsecase struct {
	savedSearchRepo domain.SavedSearchRepository
}

// NewSavedSearchUsecase creates the owner-gated saved search usecase
func NewSavedSearchUsecase(savedSearchRepo domain.SavedSearchRepository) domain.SavedSearchUsecase {
	return &savedSearchUsecase{savedSearchRepo: savedSearchRepo}
}

func validFrequency(f string) bool {
	switch f {
	case domain.AlertFrequencyDaily, domain.AlertFrequencyWeekly, domain.AlertFrequencyNever:
		return true
	}
	return false
}

func (uc *savedSearchUsecase) Create(ctx context.Context, userID string, search *domain.SavedSearch) (*domain.SavedSearch, error) {
	if search.Frequency == "" {
		search.Frequency = domain.AlertFrequencyNever
	}
	if !validFrequency(search.Frequency) {
		return nil, apperror.BadRequest("Invalid frequency. Must be: daily, weekly, or never")
	}
	search.UserID = userID
	search.LastSent = nil

	if err := uc.savedSearchRepo.Create(ctx, search); err != nil {
		return nil, storageErr(err)
	}
	return search, nil
}

func (uc *savedSearchUsecase) ListOwn(ctx context.Context, userID string) ([]domain.SavedSearch, error) {
	searches, err := uc.savedSearchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return searches, nil
}

func (uc *savedSearchUsecase) Update(ctx context.Context, userID string, search *domain.SavedSearch) (*domain.SavedSearch, error) {
	if search.Frequency == "" {
		search.Frequency = domain.AlertFrequencyNever
	}
	if !validFrequency(search.Frequency) {
		return nil, apperror.BadRequest("Invalid frequency. Must be: daily, weekly, or never")
	}

	existing, err := uc.getOwned(ctx, userID, search.ID)
	if err != nil {
		return nil, err
	}
	// last_sent belongs to the scheduler; owner updates never touch it.
	search.UserID = existing.UserID
	search.LastSent = existing.LastSent

	if err := uc.savedSearchRepo.Update(ctx, search); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Saved search not found")
		}
		return nil, storageErr(err)
	}
	return search, nil
}

func (uc *savedSearchUsecase) Delete(ctx context.Context, userID, searchID string) error {
	if _, err := uc.getOwned(ctx, userID, searchID); err != nil {
		return err
	}
	if err := uc.savedSearchRepo.Delete(ctx, searchID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Saved search not found")
		}
		return storageErr(err)
	}
	return nil
}

func (uc *savedSearchUsecase) getOwned(ctx context.Context, userID, searchID string) (*domain.SavedSearch, error) {
	search, err := uc.savedSearchRepo.GetByID(ctx, searchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Saved search not found")
		}
		return nil, storageErr(err)
	}
	if search.UserID != userID {
		return nil, apperror.Forbidden("You can only manage your own saved searches")
	}
	return search, nil
}
