package service

import (
	"context"
	"errors"
	"fmt"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/registry"
	"stc-compliance-backend/internal/stc"
)

// ErrUnauthorized is returned when the acting principal may not touch the
// requested record. Every service operation takes the actor's id and role
// explicitly; nothing is resolved from ambient state.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError reports a request the caller can correct. The transport
// layer maps it to a client error; unclassified errors are server faults.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type AuthService interface {
	Signup(ctx context.Context, user *domain.User, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type InstallationService interface {
	CreateInstallation(ctx context.Context, tradieID string, inst *domain.Installation) (*domain.Installation, error)
	GetInstallation(ctx context.Context, actorID string, actorRole domain.UserRole, id string) (*domain.Installation, []domain.Panel, error)
	ListMyInstallations(ctx context.Context, tradieID string, page, pageSize int32) ([]domain.Installation, int32, error)
	UpdateDetails(ctx context.Context, actorID string, inst *domain.Installation) error
	CaptureProgress(ctx context.Context, actorID string, actorRole domain.UserRole, id string) (captured, total int32, err error)
}

type PanelService interface {
	AddPanel(ctx context.Context, actorID string, panel *domain.Panel) (*domain.Panel, error)
	ListPanels(ctx context.Context, actorID string, actorRole domain.UserRole, installationID string) ([]domain.Panel, error)
	EvidenceUploadURLs(ctx context.Context, actorID, installationID, contentType string) (*EvidenceUpload, error)
	VerifyPanels(ctx context.Context, actorID string, actorRole domain.UserRole, installationID string) ([]registry.SerialResult, registry.Summary, error)
}

// EvidenceUpload carries the presigned upload targets for one panel's two
// required photos.
type EvidenceUpload struct {
	SerialImageKey   string `json:"serial_image_key"`
	SerialUploadURL  string `json:"serial_upload_url"`
	InstallImageKey  string `json:"installation_image_key"`
	InstallUploadURL string `json:"installation_upload_url"`
}

type AssignmentService interface {
	AssignCredits(ctx context.Context, actorID string, actorRole domain.UserRole, installationID, signatureKey string, agreedToTerms bool) (*domain.RightsAssignment, error)
	GetAssignment(ctx context.Context, actorID string, actorRole domain.UserRole, installationID string) (*domain.RightsAssignment, error)
	SignatureUploadURL(ctx context.Context, actorID, installationID string) (key, uploadURL string, err error)
}

type ReviewService interface {
	StartReview(ctx context.Context, actorID string, actorRole domain.UserRole, installationID, notes string) (*domain.Installation, error)
	Approve(ctx context.Context, actorID string, actorRole domain.UserRole, installationID, notes string) (*domain.Installation, error)
	Reject(ctx context.Context, actorID string, actorRole domain.UserRole, installationID, notes string) (*domain.Installation, error)
	MarkCreditsClaimed(ctx context.Context, actorID string, actorRole domain.UserRole, installationID, notes string) (*domain.Installation, error)
	ListByStatus(ctx context.Context, actorRole domain.UserRole, status domain.InstallationStatus, page, pageSize int32) ([]domain.Installation, int32, error)
	ListTradies(ctx context.Context, actorRole domain.UserRole) ([]domain.User, error)
}

type CalculatorService interface {
	Estimate(ctx context.Context, in stc.Input, postcode string) (stc.Result, error)
	RecentCalculations(ctx context.Context, limit int32) ([]domain.Calculation, error)
}

type DocumentService interface {
	GenerateDocument(ctx context.Context, actorID string, actorRole domain.UserRole, installationID string, docType domain.DocumentType) (*domain.ComplianceDocument, error)
	ListDocuments(ctx context.Context, actorRole domain.UserRole, installationID string) ([]domain.ComplianceDocument, error)
}

type EmailService interface {
	SendReviewOutcomeNotification(ctx context.Context, email, name, siteAddress string, status domain.InstallationStatus, notes string) error
	SendReviewReminder(ctx context.Context, adminEmail string, pendingCount int, oldestSiteAddress string) error
}
