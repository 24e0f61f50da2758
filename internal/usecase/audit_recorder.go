package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
)

type auditRecorder struct {
	auditRepo domain.AuditRepository
	userRepo  domain.UserRepository
}

// NewAuditRecorder builds the write side of the audit trail. Actor identity
// is resolved and denormalized at write time; a failed insert is logged and
// swallowed so the audited operation never rolls back over its own trail.
func NewAuditRecorder(auditRepo domain.AuditRepository, userRepo domain.UserRepository) domain.AuditLogger {
	return &auditRecorder{auditRepo: auditRepo, userRepo: userRepo}
}

func (a *auditRecorder) Record(ctx context.Context, action, entityType, entityID string, changes *domain.AuditChanges, reason string, metadata map[string]interface{}) {
	entry := &domain.AuditLogEntry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
		Reason:     reason,
		Metadata:   metadata,
	}
	a.fillProvenance(ctx, entry)
	a.fillActor(ctx, entry)

	if err := a.auditRepo.Insert(ctx, entry); err != nil {
		logger.Log.Error("audit write failed",
			"action", action, "entity_type", entityType, "entity_id", entityID, "error", err)
	}
}

func (a *auditRecorder) RecordCreate(ctx context.Context, entityType, entityID string, after map[string]interface{}) {
	a.Record(ctx, domain.AuditActionCreate, entityType, entityID,
		&domain.AuditChanges{After: after}, "", nil)
}

func (a *auditRecorder) RecordUpdate(ctx context.Context, entityType, entityID string, before, after map[string]interface{}, fields []string) {
	a.Record(ctx, domain.AuditActionUpdate, entityType, entityID,
		&domain.AuditChanges{Before: before, After: after, Fields: fields}, "", nil)
}

func (a *auditRecorder) RecordDelete(ctx context.Context, entityType, entityID string, before map[string]interface{}, metadata map[string]interface{}) {
	a.Record(ctx, domain.AuditActionDelete, entityType, entityID,
		&domain.AuditChanges{Before: before}, "", metadata)
}

func (a *auditRecorder) fillProvenance(ctx context.Context, entry *domain.AuditLogEntry) {
	if ip, ok := ctx.Value(domain.KeyClientIP).(string); ok {
		entry.IPAddress = ip
	}
	if ua, ok := ctx.Value(domain.KeyUserAgent).(string); ok {
		entry.UserAgent = ua
	}
}

// fillActor snapshots the acting user's identity into the entry. Email falls
// back to the context claim when the account lookup fails; the entry is
// still written.
func (a *auditRecorder) fillActor(ctx context.Context, entry *domain.AuditLogEntry) {
	actorID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || actorID == "" {
		return
	}
	entry.ActorID = actorID
	if email, ok := ctx.Value(domain.KeyUserEmail).(string); ok {
		entry.ActorEmail = email
	}
	if user, err := a.userRepo.GetByID(ctx, actorID); err == nil {
		entry.ActorEmail = user.Email
		entry.ActorName = user.Name
	}
}
