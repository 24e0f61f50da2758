package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

// NewCandidateRepository creates a new candidate profile repository
func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `
		SELECT user_id, full_name, title, location, discoverable, cv_url, created_at, updated_at
		FROM candidate_profiles WHERE user_id = $1`
	var profile domain.CandidateProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID, &profile.FullName, &profile.Title, &profile.Location,
		&profile.Discoverable, &profile.CvURL, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &profile, nil
}

func (r *candidateRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM candidate_profiles WHERE user_id = $1`, userID)
	return mapError(err)
}

type cvRepo struct {
	db *pgxpool.Pool
}

// NewCVRepository creates a new CV document repository
func NewCVRepository(db *pgxpool.Pool) domain.CVRepository {
	return &cvRepo{db: db}
}

func (r *cvRepo) GetByID(ctx context.Context, id int64) (*domain.CV, error) {
	query := `SELECT id, user_id, file_url, file_name, created_at FROM cvs WHERE id = $1`
	var cv domain.CV
	err := r.db.QueryRow(ctx, query, id).Scan(&cv.ID, &cv.UserID, &cv.FileURL, &cv.FileName, &cv.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &cv, nil
}

func (r *cvRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *cvRepo) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM cvs WHERE user_id = $1`, userID)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected(), nil
}
