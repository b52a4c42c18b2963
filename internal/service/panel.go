package service

import (
	"context"
	"fmt"
	"time"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/logger"
	"stc-compliance-backend/internal/registry"
	"stc-compliance-backend/internal/repository"
	"stc-compliance-backend/internal/storage"
)

const uploadURLExpiry = 15 * time.Minute

type panelService struct {
	panelRepo repository.PanelRepository
	instRepo  repository.InstallationRepository
	auditRepo repository.AuditLogRepository
	verifier  registry.Verifier
	store     storage.Interface
}

func NewPanelService(
	panelRepo repository.PanelRepository,
	instRepo repository.InstallationRepository,
	auditRepo repository.AuditLogRepository,
	verifier registry.Verifier,
	store storage.Interface,
) PanelService {
	return &panelService{
		panelRepo: panelRepo,
		instRepo:  instRepo,
		auditRepo: auditRepo,
		verifier:  verifier,
		store:     store,
	}
}

func (s *panelService) AddPanel(ctx context.Context, actorID string, panel *domain.Panel) (*domain.Panel, error) {
	inst, err := s.instRepo.GetByID(ctx, panel.InstallationID)
	if err != nil {
		return nil, err
	}
	if inst.TradieID != actorID {
		return nil, ErrUnauthorized
	}
	if inst.Status != domain.InstallationStatusDraft {
		return nil, validationErrorf("panels can only be added while the installation is a draft")
	}
	if panel.SerialNumber == "" {
		return nil, validationErrorf("serial number is required")
	}
	if panel.SerialImageURL == "" || panel.InstallImageURL == "" {
		return nil, validationErrorf("serial and installation photos are both required")
	}

	panel.Verified = false
	panel.CECApproved = false
	if err := s.panelRepo.Create(ctx, panel); err != nil {
		return nil, err
	}
	return panel, nil
}

func (s *panelService) ListPanels(ctx context.Context, actorID string, actorRole domain.UserRole, installationID string) ([]domain.Panel, error) {
	inst, err := s.instRepo.GetByID(ctx, installationID)
	if err != nil {
		return nil, err
	}
	if !canView(inst, actorID, actorRole) {
		return nil, ErrUnauthorized
	}
	return s.panelRepo.ListByInstallation(ctx, installationID)
}

func (s *panelService) EvidenceUploadURLs(ctx context.Context, actorID, installationID, contentType string) (*EvidenceUpload, error) {
	inst, err := s.instRepo.GetByID(ctx, installationID)
	if err != nil {
		return nil, err
	}
	if inst.TradieID != actorID {
		return nil, ErrUnauthorized
	}

	ext := extensionFor(contentType)
	if ext == "" {
		return nil, validationErrorf("unsupported content type %q", contentType)
	}

	now := time.Now().UnixNano()
	upload := &EvidenceUpload{
		SerialImageKey:  fmt.Sprintf("%s/%d_serial%s", installationID, now, ext),
		InstallImageKey: fmt.Sprintf("%s/%d_install%s", installationID, now, ext),
	}

	upload.SerialUploadURL, err = s.store.GeneratePresignedUploadURL(ctx, upload.SerialImageKey, contentType, uploadURLExpiry)
	if err != nil {
		return nil, err
	}
	upload.InstallUploadURL, err = s.store.GeneratePresignedUploadURL(ctx, upload.InstallImageKey, contentType, uploadURLExpiry)
	if err != nil {
		return nil, err
	}
	return upload, nil
}

// VerifyPanels runs the registry check for every panel of an installation,
// updates the per-panel flags, and records an audit entry summarising the
// outcome. Admin only.
func (s *panelService) VerifyPanels(ctx context.Context, actorID string, actorRole domain.UserRole, installationID string) ([]registry.SerialResult, registry.Summary, error) {
	if actorRole != domain.UserRoleAdmin {
		return nil, registry.Summary{}, ErrUnauthorized
	}
	if _, err := s.instRepo.GetByID(ctx, installationID); err != nil {
		return nil, registry.Summary{}, err
	}

	panels, err := s.panelRepo.ListByInstallation(ctx, installationID)
	if err != nil {
		return nil, registry.Summary{}, err
	}
	if len(panels) == 0 {
		return nil, registry.Summary{}, validationErrorf("installation has no captured panels")
	}

	serials := make([]string, 0, len(panels))
	for _, p := range panels {
		serials = append(serials, p.SerialNumber)
	}

	results, err := s.verifier.Verify(ctx, serials)
	if err != nil {
		return nil, registry.Summary{}, fmt.Errorf("registry verification failed: %w", err)
	}

	bySerial := make(map[string]registry.SerialResult, len(results))
	for _, r := range results {
		bySerial[r.SerialNumber] = r
	}

	for _, p := range panels {
		r, ok := bySerial[p.SerialNumber]
		if !ok {
			continue
		}
		if err := s.panelRepo.UpdateVerification(ctx, p.ID, r.Valid(), r.CECApproved); err != nil {
			return nil, registry.Summary{}, err
		}
	}

	summary := registry.Summarize(results)

	auditStatus := domain.AuditStatusPassed
	switch {
	case summary.Valid == 0:
		auditStatus = domain.AuditStatusFailed
	case summary.Valid < summary.Total:
		auditStatus = domain.AuditStatusWarning
	}

	entry := &domain.AuditLog{
		InstallationID: installationID,
		AuditType:      domain.AuditTypePanelSerialVerification,
		Status:         auditStatus,
		Details: map[string]string{
			"total":      fmt.Sprintf("%d", summary.Total),
			"valid":      fmt.Sprintf("%d", summary.Valid),
			"duplicates": fmt.Sprintf("%d", summary.Duplicates),
			"invalid":    fmt.Sprintf("%d", summary.Invalid),
		},
		PerformedBy: actorID,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		// The verification itself succeeded; the audit trail entry is
		// best-effort.
		logger.Warn("Failed to write verification audit entry", "installation_id", installationID, "error", err)
	}

	return results, summary, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
