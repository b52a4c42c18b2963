package service_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/registry"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
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
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) ListTradies(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockInstallationRepo
type MockInstallationRepo struct {
	mock.Mock
}

func (m *MockInstallationRepo) Create(ctx context.Context, inst *domain.Installation) error {
	args := m.Called(ctx, inst)
	return args.Error(0)
}
func (m *MockInstallationRepo) GetByID(ctx context.Context, id string) (*domain.Installation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installation), args.Error(1)
}
func (m *MockInstallationRepo) ListByTradie(ctx context.Context, tradieID string, page, pageSize int32) ([]domain.Installation, int32, error) {
	args := m.Called(ctx, tradieID, page, pageSize)
	return args.Get(0).([]domain.Installation), args.Get(1).(int32), args.Error(2)
}
func (m *MockInstallationRepo) ListByStatus(ctx context.Context, status domain.InstallationStatus, page, pageSize int32) ([]domain.Installation, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Installation), args.Get(1).(int32), args.Error(2)
}
func (m *MockInstallationRepo) UpdateDetails(ctx context.Context, inst *domain.Installation) error {
	args := m.Called(ctx, inst)
	return args.Error(0)
}
func (m *MockInstallationRepo) UpdateStatus(ctx context.Context, id string, from, to domain.InstallationStatus, notes string) error {
	args := m.Called(ctx, id, from, to, notes)
	return args.Error(0)
}
func (m *MockInstallationRepo) ListSubmittedBefore(ctx context.Context, cutoff time.Time) ([]domain.Installation, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Installation), args.Error(1)
}

// MockPanelRepo
type MockPanelRepo struct {
	mock.Mock
}

func (m *MockPanelRepo) Create(ctx context.Context, panel *domain.Panel) error {
	args := m.Called(ctx, panel)
	return args.Error(0)
}
func (m *MockPanelRepo) ListByInstallation(ctx context.Context, installationID string) ([]domain.Panel, error) {
	args := m.Called(ctx, installationID)
	return args.Get(0).([]domain.Panel), args.Error(1)
}
func (m *MockPanelRepo) CountByInstallation(ctx context.Context, installationID string) (int32, error) {
	args := m.Called(ctx, installationID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockPanelRepo) UpdateVerification(ctx context.Context, id string, verified, cecApproved bool) error {
	args := m.Called(ctx, id, verified, cecApproved)
	return args.Error(0)
}
func (m *MockPanelRepo) ListUnverified(ctx context.Context, limit int32) ([]domain.Panel, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Panel), args.Error(1)
}

// MockAssignmentRepo
type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) CreateAndSubmit(ctx context.Context, assignment *domain.RightsAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}
func (m *MockAssignmentRepo) GetByInstallation(ctx context.Context, installationID string) (*domain.RightsAssignment, error) {
	args := m.Called(ctx, installationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RightsAssignment), args.Error(1)
}

// MockCalculationRepo
type MockCalculationRepo struct {
	mock.Mock
}

func (m *MockCalculationRepo) Create(ctx context.Context, calc *domain.Calculation) error {
	args := m.Called(ctx, calc)
	return args.Error(0)
}
func (m *MockCalculationRepo) ListRecent(ctx context.Context, limit int32) ([]domain.Calculation, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Calculation), args.Error(1)
}

// MockDocumentRepo
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.ComplianceDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
func (m *MockDocumentRepo) ListByInstallation(ctx context.Context, installationID string) ([]domain.ComplianceDocument, error) {
	args := m.Called(ctx, installationID)
	return args.Get(0).([]domain.ComplianceDocument), args.Error(1)
}

// MockAuditLogRepo
type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditLogRepo) ListByInstallation(ctx context.Context, installationID string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, installationID)
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReviewOutcomeNotification(ctx context.Context, email, name, siteAddress string, status domain.InstallationStatus, notes string) error {
	args := m.Called(ctx, email, name, siteAddress, status, notes)
	return args.Error(0)
}
func (m *MockEmailService) SendReviewReminder(ctx context.Context, adminEmail string, pendingCount int, oldestSiteAddress string) error {
	args := m.Called(ctx, adminEmail, pendingCount, oldestSiteAddress)
	return args.Error(0)
}

// MockVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, serials []string) ([]registry.SerialResult, error) {
	args := m.Called(ctx, serials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registry.SerialResult), args.Error(1)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockStorage) SaveFile(key string, reader io.Reader) error {
	args := m.Called(key, reader)
	return args.Error(0)
}
func (m *MockStorage) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
