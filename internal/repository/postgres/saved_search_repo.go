package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type savedSearchRepo struct {
	db *pgxpool.Pool
}

// NewSavedSearchRepository creates a new saved search repository
func NewSavedSearchRepository(db *pgxpool.Pool) domain.SavedSearchRepository {
	return &savedSearchRepo{db: db}
}

const savedSearchColumns = `
	id, user_id, keyword, location, country_code, category, sport, language,
	frequency, active, last_sent, created_at, updated_at`

func scanSavedSearch(row interface{ Scan(...interface{}) error }) (*domain.SavedSearch, error) {
	var s domain.SavedSearch
	err := row.Scan(
		&s.ID, &s.UserID, &s.Keyword, &s.Location, &s.CountryCode, &s.Category,
		&s.Sport, &s.Language, &s.Frequency, &s.Active, &s.LastSent, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *savedSearchRepo) Create(ctx context.Context, search *domain.SavedSearch) error {
	query := `
		INSERT INTO saved_searches (
			id, user_id, keyword, location, country_code, category, sport, language,
			frequency, active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`

	if search.ID == "" {
		search.ID = uuid.NewString()
	}
	now := time.Now()
	search.CreatedAt = now
	search.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		search.ID, search.UserID, search.Keyword, search.Location, search.CountryCode,
		search.Category, search.Sport, search.Language, search.Frequency, search.Active, now,
	)
	return mapError(err)
}

func (r *savedSearchRepo) GetByID(ctx context.Context, id string) (*domain.SavedSearch, error) {
	query := `SELECT ` + savedSearchColumns + ` FROM saved_searches WHERE id = $1`
	return scanSavedSearch(r.db.QueryRow(ctx, query, id))
}

func (r *savedSearchRepo) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.SavedSearch, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var searches []domain.SavedSearch
	for rows.Next() {
		s, err := scanSavedSearch(rows)
		if err != nil {
			return nil, err
		}
		searches = append(searches, *s)
	}
	return searches, mapError(rows.Err())
}

func (r *savedSearchRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedSearch, error) {
	query := `SELECT ` + savedSearchColumns + ` FROM saved_searches WHERE user_id = $1 ORDER BY created_at DESC`
	return r.listQuery(ctx, query, userID)
}

// ListActive returns the scheduler's working set; due-ness by frequency is
// decided by the alert usecase, not here.
func (r *savedSearchRepo) ListActive(ctx context.Context) ([]domain.SavedSearch, error) {
	query := `SELECT ` + savedSearchColumns + ` FROM saved_searches WHERE active = TRUE AND frequency <> 'never'`
	return r.listQuery(ctx, query)
}

func (r *savedSearchRepo) Update(ctx context.Context, search *domain.SavedSearch) error {
	query := `
		UPDATE saved_searches
		SET keyword = $2, location = $3, country_code = $4, category = $5, sport = $6,
		    language = $7, frequency = $8, active = $9, updated_at = $10
		WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		search.ID, search.Keyword, search.Location, search.CountryCode, search.Category,
		search.Sport, search.Language, search.Frequency, search.Active, time.Now())
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLastSent records a successful dispatch. Called only after the
// notification actually went out.
func (r *savedSearchRepo) UpdateLastSent(ctx context.Context, id string, at time.Time) error {
	result, err := r.db.Exec(ctx,
		`UPDATE saved_searches SET last_sent = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *savedSearchRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM saved_searches WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *savedSearchRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM saved_searches WHERE user_id = $1`, userID)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected(), nil
}
