package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors. Repositories return these; usecases translate them
// into apperror values with caller-appropriate messages.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrDuplicateInteraction = errors.New("interaction already exists")
	ErrAlreadyWithdrawn     = errors.New("interaction already withdrawn")
	ErrTimeout              = errors.New("storage operation timed out")
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // jobseeker, recruiter, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}

type AuthUsecase interface {
	EnsureUserExists(ctx context.Context, user *User) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
