package domain

import (
	"context"
	"time"
)

// Audit action constants
const (
	AuditActionCreate   = "create"
	AuditActionUpdate   = "update"
	AuditActionDelete   = "delete"
	AuditActionLogin    = "login"
	AuditActionLogout   = "logout"
	AuditActionRegister = "register"
)

// AuditChanges holds optional before/after snapshots for an audited mutation.
type AuditChanges struct {
	Before map[string]interface{} `json:"before,omitempty"`
	After  map[string]interface{} `json:"after,omitempty"`
	Fields []string               `json:"fields,omitempty"`
}

// AuditLogEntry is an append-only record of an administrative action. Actor
// identity is denormalized at write time so the trail stays readable after
// the actor account is deleted.
type AuditLogEntry struct {
	ID         string                 `json:"id"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	ActorID    string                 `json:"actor_id"`
	ActorEmail string                 `json:"actor_email"`
	ActorName  string                 `json:"actor_name"`
	Changes    *AuditChanges          `json:"changes,omitempty"`
	Reason     string                 `json:"reason,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	IPAddress  string                 `json:"ip_address,omitempty"`
	UserAgent  string                 `json:"user_agent,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// AuditRepository is insert-and-query only. No update or delete is ever
// exposed for audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *AuditLogEntry) error
	ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]AuditLogEntry, int64, error)
	ListByTimeRange(ctx context.Context, from, to time.Time, limit, offset int) ([]AuditLogEntry, int64, error)
}

// AuditLogger records administrative actions. A failed write must never
// abort the primary operation it accompanies; implementations log the
// failure and swallow it.
type AuditLogger interface {
	Record(ctx context.Context, action, entityType, entityID string, changes *AuditChanges, reason string, metadata map[string]interface{})
	RecordCreate(ctx context.Context, entityType, entityID string, after map[string]interface{})
	RecordUpdate(ctx context.Context, entityType, entityID string, before, after map[string]interface{}, fields []string)
	RecordDelete(ctx context.Context, entityType, entityID string, before map[string]interface{}, metadata map[string]interface{})
}

// AuditUsecase exposes the forensic read side to admins.
type AuditUsecase interface {
	ListByEntity(ctx context.Context, role, entityType, entityID string, page, pageSize int) ([]AuditLogEntry, int64, error)
	ListByTimeRange(ctx context.Context, role string, from, to time.Time, page, pageSize int) ([]AuditLogEntry, int64, error)
}
