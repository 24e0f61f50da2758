package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// EnsureUserExists upserts the account on first authenticated request so a
// valid token is enough to start using the API.
func (uc *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) error {
	existing, err := uc.userRepo.GetByID(ctx, user.ID)
	if err == nil {
		user.Role = existing.Role
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return storageErr(err)
	}
	if user.Role == "" {
		user.Role = domain.RoleJobSeeker
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateInteraction) {
			// Lost a concurrent first-request race; the account exists now.
			return nil
		}
		return storageErr(err)
	}
	return nil
}

// GetCurrentUser resolves the account, including its authoritative role.
// Role always comes from here, never from token claims.
func (uc *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Account not found")
		}
		return nil, storageErr(err)
	}
	return user, nil
}
