package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
)

// MockAuditLogger records calls so tests can inspect the written entry.
type MockAuditLogger struct {
	mock.Mock
}

func (m *MockAuditLogger) Record(ctx context.Context, action, entityType, entityID string, changes *domain.AuditChanges, reason string, metadata map[string]interface{}) {
	m.Called(ctx, action, entityType, entityID, changes, reason, metadata)
}

func (m *MockAuditLogger) RecordCreate(ctx context.Context, entityType, entityID string, after map[string]interface{}) {
	m.Called(ctx, entityType, entityID, after)
}

func (m *MockAuditLogger) RecordUpdate(ctx context.Context, entityType, entityID string, before, after map[string]interface{}, fields []string) {
	m.Called(ctx, entityType, entityID, before, after, fields)
}

func (m *MockAuditLogger) RecordDelete(ctx context.Context, entityType, entityID string, before map[string]interface{}, metadata map[string]interface{}) {
	m.Called(ctx, entityType, entityID, before, metadata)
}

type adminFixture struct {
	jobRepo         *MockJobRepo
	companyRepo     *MockCompanyRepo
	userRepo        *MockUserRepo
	candidateRepo   *MockCandidateRepo
	cvRepo          *MockCVRepo
	interactionRepo *MockInteractionRepo
	savedSearchRepo *MockSavedSearchRepo
	audit           *MockAuditLogger
	uc              domain.AdminUsecase
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		jobRepo:         new(MockJobRepo),
		companyRepo:     new(MockCompanyRepo),
		userRepo:        new(MockUserRepo),
		candidateRepo:   new(MockCandidateRepo),
		cvRepo:          new(MockCVRepo),
		interactionRepo: new(MockInteractionRepo),
		savedSearchRepo: new(MockSavedSearchRepo),
		audit:           new(MockAuditLogger),
	}
	f.uc = usecase.NewAdminUsecase(
		f.jobRepo, f.companyRepo, f.userRepo, f.candidateRepo,
		f.cvRepo, f.interactionRepo, f.savedSearchRepo, f.audit)
	return f
}

func TestAdminRoleGate(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin callers are rejected before any lookup", func(t *testing.T) {
		f := newAdminFixture()

		err := f.uc.DeleteJob(ctx, domain.RoleRecruiter, 1, "spam")
		assertKind(t, err, apperror.KindForbidden)

		err = f.uc.DeleteUser(ctx, domain.RoleJobSeeker, "user-1", "")
		assertKind(t, err, apperror.KindForbidden)

		f.jobRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		f.userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestDeleteCompanyCascade(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes jobs and writes one audit entry with cascade counts", func(t *testing.T) {
		f := newAdminFixture()

		f.companyRepo.On("GetByID", ctx, int64(5)).Return(&domain.Company{ID: 5, Name: "Tarifa Watersports"}, nil)
		f.jobRepo.On("CountByCompanyID", ctx, int64(5)).Return(int64(3), nil)
		f.companyRepo.On("Delete", ctx, int64(5)).Return(nil)
		f.audit.On("Record", ctx, domain.AuditActionDelete, domain.EntityTypeCompany, "5",
			mock.AnythingOfType("*domain.AuditChanges"), "duplicate listing", mock.Anything).Return()

		err := f.uc.DeleteCompany(ctx, domain.RoleAdmin, 5, "duplicate listing")
		assert.NoError(t, err)

		f.audit.AssertNumberOfCalls(t, "Record", 1)
		metadata := f.audit.Calls[0].Arguments.Get(6).(map[string]interface{})
		assert.Equal(t, int64(3), metadata["jobsDeleted"])
		changes := f.audit.Calls[0].Arguments.Get(4).(*domain.AuditChanges)
		assert.Equal(t, "Tarifa Watersports", changes.Before["name"])
	})

	t.Run("a failed delete leaves jobs intact and writes no audit entry", func(t *testing.T) {
		f := newAdminFixture()

		f.companyRepo.On("GetByID", ctx, int64(5)).Return(&domain.Company{ID: 5, Name: "Tarifa Watersports"}, nil)
		f.jobRepo.On("CountByCompanyID", ctx, int64(5)).Return(int64(3), nil)
		f.companyRepo.On("Delete", ctx, int64(5)).Return(errors.New("connection reset"))

		err := f.uc.DeleteCompany(ctx, domain.RoleAdmin, 5, "")
		assert.Error(t, err)

		// The cascade rides on the company row's FK, so nothing was deleted
		// and the audit trail stays silent about a mutation that never took.
		f.jobRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing company is not found", func(t *testing.T) {
		f := newAdminFixture()

		f.companyRepo.On("GetByID", ctx, int64(5)).Return(nil, domain.ErrNotFound)

		err := f.uc.DeleteCompany(ctx, domain.RoleAdmin, 5, "")
		assertKind(t, err, apperror.KindNotFound)
		f.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteJobDetachesApplications(t *testing.T) {
	ctx := context.Background()

	f := newAdminFixture()

	f.jobRepo.On("GetByID", ctx, int64(7)).Return(&domain.Job{ID: 7, Title: "Head Coach"}, nil)
	f.interactionRepo.On("CountByJobID", ctx, int64(7)).Return(int64(4), nil)
	f.jobRepo.On("Delete", ctx, int64(7)).Return(nil)
	f.audit.On("Record", ctx, domain.AuditActionDelete, domain.EntityTypeJob, "7",
		mock.Anything, "expired", mock.Anything).Return()

	err := f.uc.DeleteJob(ctx, domain.RoleAdmin, 7, "expired")
	assert.NoError(t, err)

	metadata := f.audit.Calls[0].Arguments.Get(6).(map[string]interface{})
	assert.Equal(t, int64(4), metadata["applicationsDetached"])
}

func TestDeleteUserCascade(t *testing.T) {
	ctx := context.Background()

	f := newAdminFixture()

	f.userRepo.On("GetByID", ctx, "user-1").Return(&domain.User{ID: "user-1", Email: "carl@example.com", Role: domain.RoleJobSeeker}, nil)
	f.candidateRepo.On("DeleteByUserID", ctx, "user-1").Return(nil)
	f.cvRepo.On("DeleteByUserID", ctx, "user-1").Return(int64(2), nil)
	f.interactionRepo.On("DeleteByCandidate", ctx, "user-1").Return(int64(5), nil)
	f.interactionRepo.On("DeleteByRecruiter", ctx, "user-1").Return(int64(0), nil)
	f.savedSearchRepo.On("DeleteByUser", ctx, "user-1").Return(int64(1), nil)
	f.userRepo.On("Delete", ctx, "user-1").Return(nil)
	f.audit.On("Record", ctx, domain.AuditActionDelete, domain.EntityTypeUser, "user-1",
		mock.Anything, "gdpr request", mock.Anything).Return()

	err := f.uc.DeleteUser(ctx, domain.RoleAdmin, "user-1", "gdpr request")
	assert.NoError(t, err)

	metadata := f.audit.Calls[0].Arguments.Get(6).(map[string]interface{})
	assert.Equal(t, int64(2), metadata["cvsDeleted"])
	assert.Equal(t, int64(5), metadata["interactionsDeleted"])
	assert.Equal(t, int64(1), metadata["savedSearchesDeleted"])
}
