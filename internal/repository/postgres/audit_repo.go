package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type auditRepo struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates the append-only audit trail repository. No
// update or delete is implemented on purpose.
func NewAuditRepository(db *pgxpool.Pool) domain.AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Insert(ctx context.Context, entry *domain.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (
			id, action, entity_type, entity_id, actor_id, actor_email, actor_name,
			changes, reason, metadata, ip_address, user_agent, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var changes, metadata []byte
	var err error
	if entry.Changes != nil {
		if changes, err = json.Marshal(entry.Changes); err != nil {
			return err
		}
	}
	if entry.Metadata != nil {
		if metadata, err = json.Marshal(entry.Metadata); err != nil {
			return err
		}
	}

	_, err = r.db.Exec(ctx, query,
		entry.ID, entry.Action, entry.EntityType, entry.EntityID,
		entry.ActorID, entry.ActorEmail, entry.ActorName,
		changes, entry.Reason, metadata, entry.IPAddress, entry.UserAgent, entry.CreatedAt,
	)
	return mapError(err)
}

const auditColumns = `
	id, action, entity_type, entity_id, actor_id, actor_email, actor_name,
	changes, reason, metadata, ip_address, user_agent, created_at`

func scanAuditEntry(row interface{ Scan(...interface{}) error }) (*domain.AuditLogEntry, error) {
	var entry domain.AuditLogEntry
	var changes, metadata []byte
	err := row.Scan(
		&entry.ID, &entry.Action, &entry.EntityType, &entry.EntityID,
		&entry.ActorID, &entry.ActorEmail, &entry.ActorName,
		&changes, &entry.Reason, &metadata, &entry.IPAddress, &entry.UserAgent, &entry.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if len(changes) > 0 {
		if err := json.Unmarshal(changes, &entry.Changes); err != nil {
			return nil, err
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
			return nil, err
		}
	}
	return &entry, nil
}

func (r *auditRepo) list(ctx context.Context, countQuery, query string, countArgs, args []interface{}) ([]domain.AuditLogEntry, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}
	return entries, total, mapError(rows.Err())
}

func (r *auditRepo) ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]domain.AuditLogEntry, int64, error) {
	countQuery := `SELECT COUNT(*) FROM audit_logs WHERE entity_type = $1 AND entity_id = $2`
	query := `SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	return r.list(ctx, countQuery, query,
		[]interface{}{entityType, entityID},
		[]interface{}{entityType, entityID, limit, offset})
}

func (r *auditRepo) ListByTimeRange(ctx context.Context, from, to time.Time, limit, offset int) ([]domain.AuditLogEntry, int64, error) {
	countQuery := `SELECT COUNT(*) FROM audit_logs WHERE created_at >= $1 AND created_at < $2`
	query := `SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	return r.list(ctx, countQuery, query,
		[]interface{}{from, to},
		[]interface{}{from, to, limit, offset})
}
