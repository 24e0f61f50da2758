package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type jobRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `
	j.id, j.company_id, j.recruiter_user_id, j.title, j.description, j.location,
	j.country_code, j.categories, j.sports, j.languages, j.featured, j.unpublished,
	j.created_at, j.updated_at, co.name AS company_name`

const jobJoins = `
	FROM jobs j
	LEFT JOIN companies co ON j.company_id = co.id`

func scanJob(row interface{ Scan(...interface{}) error }) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.CompanyID, &job.RecruiterUserID, &job.Title, &job.Description, &job.Location,
		&job.CountryCode, &job.Categories, &job.Sports, &job.Languages, &job.Featured, &job.Unpublished,
		&job.CreatedAt, &job.UpdatedAt, &job.CompanyName,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (company_id, recruiter_user_id, title, description, location,
			country_code, categories, sports, languages, featured, unpublished, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id`

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	err := r.db.QueryRow(ctx, query,
		job.CompanyID, job.RecruiterUserID, job.Title, job.Description, job.Location,
		job.CountryCode, job.Categories, job.Sports, job.Languages, job.Featured, job.Unpublished, now,
	).Scan(&job.ID)
	return mapError(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + jobJoins + ` WHERE j.id = $1`
	return scanJob(r.db.QueryRow(ctx, query, id))
}

func (r *jobRepo) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, mapError(rows.Err())
}

// FetchPublished loads the match-engine corpus: every posting not opted out
// of publication, optionally restricted to postings created on/after since.
// Featured postings sort first, then newest, matching the alert digest
// ordering so no re-sort is needed downstream.
func (r *jobRepo) FetchPublished(ctx context.Context, since *time.Time) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + jobJoins + `
		WHERE j.unpublished = FALSE AND ($1::timestamptz IS NULL OR j.created_at >= $1)
		ORDER BY j.featured DESC, j.created_at DESC`
	return r.listQuery(ctx, query, since)
}

// FetchPublishedByRecruiter returns the recruiter's published postings, used
// to resolve or disambiguate a contact without an explicit job.
func (r *jobRepo) FetchPublishedByRecruiter(ctx context.Context, recruiterUserID string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + jobJoins + `
		WHERE j.unpublished = FALSE AND j.recruiter_user_id = $1
		ORDER BY j.created_at DESC`
	return r.listQuery(ctx, query, recruiterUserID)
}

func (r *jobRepo) FetchPublic(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE unpublished = FALSE`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query := `SELECT ` + jobColumns + jobJoins + `
		WHERE j.unpublished = FALSE
		ORDER BY j.featured DESC, j.created_at DESC
		LIMIT $1 OFFSET $2`
	jobs, err := r.listQuery(ctx, query, limit, offset)
	return jobs, total, err
}

// CountByCompanyID sizes the company-delete cascade for the audit entry;
// the jobs themselves go away atomically with the company via the FK.
func (r *jobRepo) CountByCompanyID(ctx context.Context, companyID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE company_id = $1`, companyID).Scan(&count)
	return count, mapError(err)
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
