package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type interactionRepo struct {
	db *pgxpool.Pool
}

// NewInteractionRepository creates a new interaction record repository
func NewInteractionRepository(db *pgxpool.Pool) domain.InteractionRepository {
	return &interactionRepo{db: db}
}

// interactionColumns is the join used by every read; display fields come
// denormalized so handlers never fetch parties separately.
const interactionColumns = `
	i.id, i.job_id, i.recruiter_user_id, i.candidate_user_id, i.origin, i.status,
	i.applied_at, i.last_activity_at, i.viewed_at, i.withdrawn_at,
	i.archived_by_job_seeker, i.archived_by_recruiter,
	i.recruiter_notes, i.internal_notes, i.created_at, i.updated_at,
	j.title AS job_title,
	co.name AS company_name,
	COALESCE(cp.full_name, cu.email) AS candidate_name,
	ru.name AS recruiter_name,
	ru.email AS recruiter_email`

const interactionJoins = `
	FROM interactions i
	LEFT JOIN jobs j ON i.job_id = j.id
	LEFT JOIN companies co ON j.company_id = co.id
	LEFT JOIN users cu ON i.candidate_user_id = cu.id
	LEFT JOIN candidate_profiles cp ON i.candidate_user_id = cp.user_id
	LEFT JOIN users ru ON i.recruiter_user_id = ru.id`

func scanInteraction(row interface{ Scan(...interface{}) error }) (*domain.InteractionRecord, error) {
	var rec domain.InteractionRecord
	err := row.Scan(
		&rec.ID, &rec.JobID, &rec.RecruiterID, &rec.CandidateID, &rec.Origin, &rec.Status,
		&rec.AppliedAt, &rec.LastActivityAt, &rec.ViewedAt, &rec.WithdrawnAt,
		&rec.ArchivedByJobSeeker, &rec.ArchivedByRecruiter,
		&rec.RecruiterNotes, &rec.InternalNotes, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.JobTitle, &rec.CompanyName, &rec.CandidateName, &rec.RecruiterName, &rec.RecruiterEmail,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &rec, nil
}

// Create inserts a new interaction record. The partial unique indexes on
// (job_id, candidate_user_id) and (recruiter_user_id, candidate_user_id
// WHERE origin='recruiter') decide concurrent creation races; a violation
// surfaces as domain.ErrDuplicateInteraction.
func (r *interactionRepo) Create(ctx context.Context, rec *domain.InteractionRecord) error {
	query := `
		INSERT INTO interactions (
			id, job_id, recruiter_user_id, candidate_user_id, origin, status,
			applied_at, last_activity_at, archived_by_job_seeker, archived_by_recruiter,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, FALSE, $9, $9)`

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.JobID, rec.RecruiterID, rec.CandidateID, rec.Origin, rec.Status,
		rec.AppliedAt, rec.LastActivityAt, now,
	)
	return mapError(err)
}

// GetByID retrieves an interaction record with joined display data
func (r *interactionRepo) GetByID(ctx context.Context, id string) (*domain.InteractionRecord, error) {
	query := `SELECT ` + interactionColumns + interactionJoins + ` WHERE i.id = $1`
	return scanInteraction(r.db.QueryRow(ctx, query, id))
}

// FindByJobAndCandidate is the best-effort duplicate pre-check for the
// apply path. The unique index remains authoritative.
func (r *interactionRepo) FindByJobAndCandidate(ctx context.Context, jobID int64, candidateID string) (*domain.InteractionRecord, error) {
	query := `SELECT ` + interactionColumns + interactionJoins + `
		WHERE i.job_id = $1 AND i.candidate_user_id = $2`
	return scanInteraction(r.db.QueryRow(ctx, query, jobID, candidateID))
}

// FindRecruiterContact is the best-effort duplicate pre-check for the
// contact path. The origin predicate matches the partial unique index, so
// a candidate's own application between the pair does not count as a
// duplicate here any more than it would at the constraint.
func (r *interactionRepo) FindRecruiterContact(ctx context.Context, recruiterID, candidateID string) (*domain.InteractionRecord, error) {
	query := `SELECT ` + interactionColumns + interactionJoins + `
		WHERE i.recruiter_user_id = $1 AND i.candidate_user_id = $2 AND i.origin = 'recruiter'
		LIMIT 1`
	return scanInteraction(r.db.QueryRow(ctx, query, recruiterID, candidateID))
}

func (r *interactionRepo) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.InteractionRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []domain.InteractionRecord
	for rows.Next() {
		rec, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, mapError(rows.Err())
}

// ListByRecruiter retrieves the recruiter's records, newest activity first
func (r *interactionRepo) ListByRecruiter(ctx context.Context, recruiterID string, includeArchived bool) ([]domain.InteractionRecord, error) {
	query := `SELECT ` + interactionColumns + interactionJoins + `
		WHERE i.recruiter_user_id = $1 AND (i.archived_by_recruiter = FALSE OR $2)
		ORDER BY i.last_activity_at DESC`
	return r.listQuery(ctx, query, recruiterID, includeArchived)
}

// ListByCandidate retrieves the candidate's records, newest activity first
func (r *interactionRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.InteractionRecord, error) {
	query := `SELECT ` + interactionColumns + interactionJoins + `
		WHERE i.candidate_user_id = $1
		ORDER BY i.last_activity_at DESC`
	return r.listQuery(ctx, query, candidateID)
}

func (r *interactionRepo) CountByJobID(ctx context.Context, jobID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interactions WHERE job_id = $1`, jobID).Scan(&count)
	return count, mapError(err)
}

// UpdateStatus applies the new status only to a non-terminal row. The
// terminal check lives in the WHERE clause, not in a prior read, so two
// concurrent writers cannot both get past it.
func (r *interactionRepo) UpdateStatus(ctx context.Context, id, status string, withdrawnAt *time.Time) (*domain.InteractionRecord, error) {
	query := `
		UPDATE interactions
		SET status = $2, withdrawn_at = $3, last_activity_at = $4, updated_at = $4
		WHERE id = $1 AND status <> 'withdrawn'
		RETURNING id`

	now := time.Now()
	var updatedID string
	err := r.db.QueryRow(ctx, query, id, status, withdrawnAt, now).Scan(&updatedID)
	if err != nil {
		return nil, r.resolveConditionalFailure(ctx, id, err)
	}
	return r.GetByID(ctx, id)
}

// Withdraw is the candidate's one-way terminal transition.
func (r *interactionRepo) Withdraw(ctx context.Context, id string, at time.Time) (*domain.InteractionRecord, error) {
	query := `
		UPDATE interactions
		SET status = 'withdrawn', withdrawn_at = $2, last_activity_at = $2, updated_at = $2
		WHERE id = $1 AND status <> 'withdrawn' AND withdrawn_at IS NULL
		RETURNING id`

	var updatedID string
	err := r.db.QueryRow(ctx, query, id, at).Scan(&updatedID)
	if err != nil {
		return nil, r.resolveConditionalFailure(ctx, id, err)
	}
	return r.GetByID(ctx, id)
}

// resolveConditionalFailure distinguishes "row missing" from "row already
// terminal" after a conditional update matched nothing.
func (r *interactionRepo) resolveConditionalFailure(ctx context.Context, id string, cause error) error {
	mapped := mapError(cause)
	if !errors.Is(mapped, domain.ErrNotFound) {
		return mapped
	}
	var status string
	if err := r.db.QueryRow(ctx, `SELECT status FROM interactions WHERE id = $1`, id).Scan(&status); err != nil {
		return mapError(err)
	}
	if status == domain.InteractionStatusWithdrawn {
		return domain.ErrAlreadyWithdrawn
	}
	return mapped
}

// MarkViewed stamps viewed_at only when it is still null. Calling it again
// is an idempotent no-op, so the first-view timestamp never moves.
func (r *interactionRepo) MarkViewed(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE interactions SET viewed_at = $2, updated_at = $2 WHERE id = $1 AND viewed_at IS NULL`,
		id, at)
	return mapError(err)
}

// SetArchiveFlag flips one party's archive flag. Flags are independent of
// status and of each other.
func (r *interactionRepo) SetArchiveFlag(ctx context.Context, id string, party domain.ArchiveParty, value bool) (*domain.InteractionRecord, error) {
	column := "archived_by_job_seeker"
	if party == domain.ArchiveByRecruiter {
		column = "archived_by_recruiter"
	}
	query := `UPDATE interactions SET ` + column + ` = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, value, time.Now())
	if err != nil {
		return nil, mapError(err)
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *interactionRepo) UpdateNotes(ctx context.Context, id string, recruiterNotes, internalNotes *string) (*domain.InteractionRecord, error) {
	query := `
		UPDATE interactions
		SET recruiter_notes = COALESCE($2, recruiter_notes),
		    internal_notes = COALESCE($3, internal_notes),
		    updated_at = $4
		WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, recruiterNotes, internalNotes, time.Now())
	if err != nil {
		return nil, mapError(err)
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// TouchActivity bumps last_activity_at, used when a recruiter reaches out
// over email without a state change.
func (r *interactionRepo) TouchActivity(ctx context.Context, id string, at time.Time) error {
	result, err := r.db.Exec(ctx,
		`UPDATE interactions SET last_activity_at = $2, updated_at = $2 WHERE id = $1`,
		id, at)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *interactionRepo) DeleteByCandidate(ctx context.Context, candidateID string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM interactions WHERE candidate_user_id = $1`, candidateID)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected(), nil
}

func (r *interactionRepo) DeleteByRecruiter(ctx context.Context, recruiterID string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM interactions WHERE recruiter_user_id = $1`, recruiterID)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected(), nil
}
