package repository

import (
	"context"
	"errors"
	"time"

	"stc-compliance-backend/internal/domain"
)

// ErrStatusConflict is returned when a status write finds the row no longer in
// the expected status. Transitions are applied compare-and-swap so a lost race
// between two reviewers surfaces instead of silently overwriting.
var ErrStatusConflict = errors.New("installation status changed concurrently")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListAdmins(ctx context.Context) ([]domain.User, error)
	ListTradies(ctx context.Context) ([]domain.User, error)
}

type InstallationRepository interface {
	Create(ctx context.Context, inst *domain.Installation) error
	GetByID(ctx context.Context, id string) (*domain.Installation, error)
	ListByTradie(ctx context.Context, tradieID string, page, pageSize int32) ([]domain.Installation, int32, error)
	ListByStatus(ctx context.Context, status domain.InstallationStatus, page, pageSize int32) ([]domain.Installation, int32, error)
	UpdateDetails(ctx context.Context, inst *domain.Installation) error

	// UpdateStatus moves id from "from" to "to" in one compare-and-swap
	// write, stamping notes and updated_at. Returns ErrStatusConflict when
	// the row is no longer in "from".
	UpdateStatus(ctx context.Context, id string, from, to domain.InstallationStatus, notes string) error

	// ListSubmittedBefore returns installations still awaiting review that
	// were submitted before the cutoff.
	ListSubmittedBefore(ctx context.Context, cutoff time.Time) ([]domain.Installation, error)
}

type PanelRepository interface {
	Create(ctx context.Context, panel *domain.Panel) error
	ListByInstallation(ctx context.Context, installationID string) ([]domain.Panel, error)
	CountByInstallation(ctx context.Context, installationID string) (int32, error)
	UpdateVerification(ctx context.Context, id string, verified, cecApproved bool) error
	ListUnverified(ctx context.Context, limit int32) ([]domain.Panel, error)
}

type AssignmentRepository interface {
	// CreateAndSubmit inserts the assignment row and flips the installation
	// draft -> submitted with credits_assigned set true, in one transaction.
	// A raced or repeated submit returns ErrStatusConflict and leaves
	// neither write behind.
	CreateAndSubmit(ctx context.Context, assignment *domain.RightsAssignment) error
	GetByInstallation(ctx context.Context, installationID string) (*domain.RightsAssignment, error)
}

type CalculationRepository interface {
	Create(ctx context.Context, calc *domain.Calculation) error
	ListRecent(ctx context.Context, limit int32) ([]domain.Calculation, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.ComplianceDocument) error
	ListByInstallation(ctx context.Context, installationID string) ([]domain.ComplianceDocument, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListByInstallation(ctx context.Context, installationID string) ([]domain.AuditLog, error)
}
