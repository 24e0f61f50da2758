package usecase

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type auditUsecase struct {
	auditRepo domain.AuditRepository
}

// NewAuditUsecase creates the admin-facing audit trail read usecase
func NewAuditUsecase(auditRepo domain.AuditRepository) domain.AuditUsecase {
	return &auditUsecase{auditRepo: auditRepo}
}

func clampPage(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}

func (uc *auditUsecase) ListByEntity(ctx context.Context, role, entityType, entityID string, page, pageSize int) ([]domain.AuditLogEntry, int64, error) {
	if role != domain.RoleAdmin {
		return nil, 0, apperror.Forbidden("Admin access required")
	}
	limit, offset := clampPage(page, pageSize)
	entries, total, err := uc.auditRepo.ListByEntity(ctx, entityType, entityID, limit, offset)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return entries, total, nil
}

func (uc *auditUsecase) ListByTimeRange(ctx context.Context, role string, from, to time.Time, page, pageSize int) ([]domain.AuditLogEntry, int64, error) {
	if role != domain.RoleAdmin {
		return nil, 0, apperror.Forbidden("Admin access required")
	}
	if !to.After(from) {
		return nil, 0, apperror.BadRequest("Invalid time range")
	}
	limit, offset := clampPage(page, pageSize)
	entries, total, err := uc.auditRepo.ListByTimeRange(ctx, from, to, limit, offset)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return entries, total, nil
}
