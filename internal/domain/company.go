package domain

import (
	"context"
	"time"
)

type Company struct {
	ID          int64     `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Website     *string   `json:"website,omitempty"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*Company, error)
	Delete(ctx context.Context, id int64) error
}
