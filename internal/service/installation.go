package service

import (
	"context"
	"time"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository"
)

type installationService struct {
	instRepo  repository.InstallationRepository
	panelRepo repository.PanelRepository
	userRepo  repository.UserRepository
}

func NewInstallationService(
	instRepo repository.InstallationRepository,
	panelRepo repository.PanelRepository,
	userRepo repository.UserRepository,
) InstallationService {
	return &installationService{
		instRepo:  instRepo,
		panelRepo: panelRepo,
		userRepo:  userRepo,
	}
}

// validateInstallationFields guards every write of tradie-supplied fields.
// Updates go through it too: total_panels feeds the capture guard on
// submission, so a zeroed count must never reach the stored record.
func validateInstallationFields(inst *domain.Installation) error {
	if inst.CustomerName == "" {
		return validationErrorf("customer name is required")
	}
	if inst.SiteAddress == "" {
		return validationErrorf("site address is required")
	}
	if inst.SystemSizeKw <= 0 {
		return validationErrorf("system size must be positive")
	}
	if inst.TotalPanels <= 0 {
		return validationErrorf("total panel count must be positive")
	}
	if inst.InstallationDate == "" {
		inst.InstallationDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", inst.InstallationDate); err != nil {
		return validationErrorf("installation date must be yyyy-mm-dd")
	}
	return nil
}

func (s *installationService) CreateInstallation(ctx context.Context, tradieID string, inst *domain.Installation) (*domain.Installation, error) {
	if err := validateInstallationFields(inst); err != nil {
		return nil, err
	}

	inst.TradieID = tradieID
	inst.Status = domain.InstallationStatusDraft
	inst.CreditsAssigned = false

	if err := s.instRepo.Create(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// canView limits reads to the owning tradie and admin staff.
func canView(inst *domain.Installation, actorID string, actorRole domain.UserRole) bool {
	return actorRole == domain.UserRoleAdmin || inst.TradieID == actorID
}

func (s *installationService) GetInstallation(ctx context.Context, actorID string, actorRole domain.UserRole, id string) (*domain.Installation, []domain.Panel, error) {
	inst, err := s.instRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !canView(inst, actorID, actorRole) {
		return nil, nil, ErrUnauthorized
	}

	panels, err := s.panelRepo.ListByInstallation(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if tradie, err := s.userRepo.GetByID(ctx, inst.TradieID); err == nil {
		inst.Tradie = tradie
	}

	return inst, panels, nil
}

func (s *installationService) ListMyInstallations(ctx context.Context, tradieID string, page, pageSize int32) ([]domain.Installation, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.instRepo.ListByTradie(ctx, tradieID, page, pageSize)
}

func (s *installationService) UpdateDetails(ctx context.Context, actorID string, inst *domain.Installation) error {
	current, err := s.instRepo.GetByID(ctx, inst.ID)
	if err != nil {
		return err
	}
	if current.TradieID != actorID {
		return ErrUnauthorized
	}
	// Site and customer details are only editable while the record is a draft;
	// after submission only admin status transitions touch it.
	if current.Status != domain.InstallationStatusDraft {
		return validationErrorf("installation details can only be edited in draft")
	}
	if err := validateInstallationFields(inst); err != nil {
		return err
	}
	return s.instRepo.UpdateDetails(ctx, inst)
}

func (s *installationService) CaptureProgress(ctx context.Context, actorID string, actorRole domain.UserRole, id string) (int32, int32, error) {
	inst, err := s.instRepo.GetByID(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	if !canView(inst, actorID, actorRole) {
		return 0, 0, ErrUnauthorized
	}
	captured, err := s.panelRepo.CountByInstallation(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	return captured, inst.TotalPanels, nil
}
