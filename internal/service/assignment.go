package service

import (
	"context"
	"fmt"
	"time"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/lifecycle"
	"stc-compliance-backend/internal/repository"
	"stc-compliance-backend/internal/storage"
)

type assignmentService struct {
	assignRepo repository.AssignmentRepository
	instRepo   repository.InstallationRepository
	panelRepo  repository.PanelRepository
	store      storage.Interface
}

func NewAssignmentService(
	assignRepo repository.AssignmentRepository,
	instRepo repository.InstallationRepository,
	panelRepo repository.PanelRepository,
	store storage.Interface,
) AssignmentService {
	return &assignmentService{
		assignRepo: assignRepo,
		instRepo:   instRepo,
		panelRepo:  panelRepo,
		store:      store,
	}
}

// AssignCredits is the draft -> submitted transition: the tradie signs the
// rights assignment agreement, which requires every declared panel to be
// captured first. On success the installation's credits_assigned flag flips
// true for good.
func (s *assignmentService) AssignCredits(ctx context.Context, actorID string, actorRole domain.UserRole, installationID, signatureKey string, agreedToTerms bool) (*domain.RightsAssignment, error) {
	inst, err := s.instRepo.GetByID(ctx, installationID)
	if err != nil {
		return nil, err
	}

	captured, err := s.panelRepo.CountByInstallation(ctx, installationID)
	if err != nil {
		return nil, err
	}

	if _, err := lifecycle.Transition(inst.Status, lifecycle.EventAssignCredits, lifecycle.Context{
		ActorID:           actorID,
		ActorRole:         actorRole,
		OwnerID:           inst.TradieID,
		CapturedPanels:    captured,
		TotalPanels:       inst.TotalPanels,
		SignaturePresent:  signatureKey != "",
		AgreementAccepted: agreedToTerms,
	}); err != nil {
		return nil, err
	}

	assignment := &domain.RightsAssignment{
		InstallationID: installationID,
		TradieID:       actorID,
		SignatureKey:   signatureKey,
		AgreedToTerms:  agreedToTerms,
		SignedAt:       time.Now(),
	}
	// One transactional write: the assignment row and the status flip land
	// together or not at all, so a raced double-submit cannot leave an
	// orphaned assignment behind.
	if err := s.assignRepo.CreateAndSubmit(ctx, assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (s *assignmentService) GetAssignment(ctx context.Context, actorID string, actorRole domain.UserRole, installationID string) (*domain.RightsAssignment, error) {
	inst, err := s.instRepo.GetByID(ctx, installationID)
	if err != nil {
		return nil, err
	}
	if !canView(inst, actorID, actorRole) {
		return nil, ErrUnauthorized
	}
	return s.assignRepo.GetByInstallation(ctx, installationID)
}

func (s *assignmentService) SignatureUploadURL(ctx context.Context, actorID, installationID string) (string, string, error) {
	inst, err := s.instRepo.GetByID(ctx, installationID)
	if err != nil {
		return "", "", err
	}
	if inst.TradieID != actorID {
		return "", "", ErrUnauthorized
	}

	key := fmt.Sprintf("%s/%d_signature.png", installationID, time.Now().UnixNano())
	url, err := s.store.GeneratePresignedUploadURL(ctx, key, "image/png", uploadURLExpiry)
	if err != nil {
		return "", "", err
	}
	return key, url, nil
}
