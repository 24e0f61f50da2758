package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/email"
)

// Mock Repositories

type MockInteractionRepo struct {
	mock.Mock
}

func (m *MockInteractionRepo) Create(ctx context.Context, rec *domain.InteractionRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockInteractionRepo) GetByID(ctx context.Context, id string) (*domain.InteractionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionRecord), args.Error(1)
}

func (m *MockInteractionRepo) FindByJobAndCandidate(ctx context.Context, jobID int64, candidateID string) (*domain.InteractionRecord, error) {
	args := m.Called(ctx, jobID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionRecord), args.Error(1)
}

func (m *MockInteractionRepo) FindRecruiterContact(ctx context.Context, recruiterID, candidateID string) (*domain.InteractionRecord, error) {
	args := m.Called(ctx, recruiterID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionRecord), args.Error(1)
}

func (m *MockInteractionRepo) ListByRecruiter(ctx context.Context, recruiterID string, includeArchived bool) ([]domain.InteractionRecord, error) {
	args := m.Called(ctx, recruiterID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InteractionRecord), args.Error(1)
}

func (m *MockInteractionRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.InteractionRecord, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InteractionRecord), args.Error(1)
}

func (m *MockInteractionRepo) CountByJobID(ctx context.Context, jobID int64) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInteractionRepo) UpdateStatus(ctx context.Context, id, status string, withdrawnAt *time.Time) (*domain.InteractionRecord, error) {
	args := m.Called(ctx, id, status, withdrawnAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionRecord), args.Error(1)
}

func (m *MockInteractionRepo) Withdraw(ctx context.Context, id string, at time.Time) (*domain.InteractionRecord, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionRecord), args.Error(1)
}

func (m *MockInteractionRepo) MarkViewed(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockInteractionRepo) SetArchiveFlag(ctx context.Context, id string, party domain.ArchiveParty, value bool) (*domain.InteractionRecord, error) {
	args := m.Called(ctx, id, party, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionRecord), args.Error(1)
}

func (m *MockInteractionRepo) UpdateNotes(ctx context.Context, id string, recruiterNotes, internalNotes *string) (*domain.InteractionRecord, error) {
	args := m.Called(ctx, id, recruiterNotes, internalNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionRecord), args.Error(1)
}

func (m *MockInteractionRepo) TouchActivity(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockInteractionRepo) DeleteByCandidate(ctx context.Context, candidateID string) (int64, error) {
	args := m.Called(ctx, candidateID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInteractionRepo) DeleteByRecruiter(ctx context.Context, recruiterID string) (int64, error) {
	args := m.Called(ctx, recruiterID)
	return args.Get(0).(int64), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) FetchPublished(ctx context.Context, since *time.Time) ([]domain.Job, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepo) FetchPublishedByRecruiter(ctx context.Context, recruiterUserID string) ([]domain.Job, error) {
	args := m.Called(ctx, recruiterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepo) FetchPublic(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) CountByCompanyID(ctx context.Context, companyID int64) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateRepo) DeleteByUserID(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCVRepo struct {
	mock.Mock
}

func (m *MockCVRepo) GetByID(ctx context.Context, id int64) (*domain.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CV), args.Error(1)
}

func (m *MockCVRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCVRepo) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSavedSearchRepo struct {
	mock.Mock
}

func (m *MockSavedSearchRepo) Create(ctx context.Context, search *domain.SavedSearch) error {
	return m.Called(ctx, search).Error(0)
}

func (m *MockSavedSearchRepo) GetByID(ctx context.Context, id string) (*domain.SavedSearch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedSearch), args.Error(1)
}

func (m *MockSavedSearchRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedSearch, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedSearch), args.Error(1)
}

func (m *MockSavedSearchRepo) ListActive(ctx context.Context) ([]domain.SavedSearch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedSearch), args.Error(1)
}

func (m *MockSavedSearchRepo) Update(ctx context.Context, search *domain.SavedSearch) error {
	return m.Called(ctx, search).Error(0)
}

func (m *MockSavedSearchRepo) UpdateLastSent(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockSavedSearchRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSavedSearchRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Insert(ctx context.Context, entry *domain.AuditLogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditRepo) ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]domain.AuditLogEntry, int64, error) {
	args := m.Called(ctx, entityType, entityID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditRepo) ListByTimeRange(ctx context.Context, from, to time.Time, limit, offset int) ([]domain.AuditLogEntry, int64, error) {
	args := m.Called(ctx, from, to, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Get(1).(int64), args.Error(2)
}

// MockNotifier satisfies both the interaction Notifier and the AlertMailer.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendWithdrawalNotice(to string, data email.WithdrawalEmailData) error {
	return m.Called(to, data).Error(0)
}

func (m *MockNotifier) SendContactMessage(to string, data email.ContactEmailData) error {
	return m.Called(to, data).Error(0)
}

func (m *MockNotifier) SendJobAlert(to string, data email.AlertEmailData) error {
	return m.Called(to, data).Error(0)
}
