package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
)

func TestAuditRecorder(t *testing.T) {
	t.Run("denormalizes actor identity at write time", func(t *testing.T) {
		auditRepo := new(MockAuditRepo)
		userRepo := new(MockUserRepo)
		recorder := usecase.NewAuditRecorder(auditRepo, userRepo)

		ctx := context.WithValue(context.Background(), domain.KeyUserID, "admin-1")
		ctx = context.WithValue(ctx, domain.KeyClientIP, "203.0.113.9")
		ctx = context.WithValue(ctx, domain.KeyUserAgent, "curl/8.0")

		userRepo.On("GetByID", ctx, "admin-1").Return(&domain.User{ID: "admin-1", Email: "admin@example.com", Name: "Ada"}, nil)
		auditRepo.On("Insert", ctx, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

		recorder.RecordDelete(ctx, domain.EntityTypeJob, "7", map[string]interface{}{"title": "Head Coach"}, nil)

		entry := auditRepo.Calls[0].Arguments.Get(1).(*domain.AuditLogEntry)
		assert.Equal(t, "admin-1", entry.ActorID)
		assert.Equal(t, "admin@example.com", entry.ActorEmail)
		assert.Equal(t, "Ada", entry.ActorName)
		assert.Equal(t, "203.0.113.9", entry.IPAddress)
		assert.Equal(t, "curl/8.0", entry.UserAgent)
		assert.Equal(t, domain.AuditActionDelete, entry.Action)
	})

	t.Run("a failed audit write never panics or propagates", func(t *testing.T) {
		auditRepo := new(MockAuditRepo)
		userRepo := new(MockUserRepo)
		recorder := usecase.NewAuditRecorder(auditRepo, userRepo)

		ctx := context.Background()
		auditRepo.On("Insert", ctx, mock.Anything).Return(errors.New("disk full"))

		assert.NotPanics(t, func() {
			recorder.RecordCreate(ctx, domain.EntityTypeUser, "user-1", nil)
		})
	})

	t.Run("entry is still written when the actor lookup fails", func(t *testing.T) {
		auditRepo := new(MockAuditRepo)
		userRepo := new(MockUserRepo)
		recorder := usecase.NewAuditRecorder(auditRepo, userRepo)

		ctx := context.WithValue(context.Background(), domain.KeyUserID, "deleted-admin")
		ctx = context.WithValue(ctx, domain.KeyUserEmail, "ghost@example.com")

		userRepo.On("GetByID", ctx, "deleted-admin").Return(nil, domain.ErrNotFound)
		auditRepo.On("Insert", ctx, mock.Anything).Return(nil)

		recorder.Record(ctx, domain.AuditActionDelete, domain.EntityTypeCV, "3", nil, "", nil)

		entry := auditRepo.Calls[0].Arguments.Get(1).(*domain.AuditLogEntry)
		assert.Equal(t, "deleted-admin", entry.ActorID)
		assert.Equal(t, "ghost@example.com", entry.ActorEmail)
	})
}
