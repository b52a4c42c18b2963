package service

import (
	"context"
	"fmt"
	"time"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository"
	"stc-compliance-backend/internal/storage"
)

type documentService struct {
	docRepo  repository.DocumentRepository
	instRepo repository.InstallationRepository
	store    storage.Interface
}

func NewDocumentService(docRepo repository.DocumentRepository, instRepo repository.InstallationRepository, store storage.Interface) DocumentService {
	return &documentService{
		docRepo:  docRepo,
		instRepo: instRepo,
		store:    store,
	}
}

// GenerateDocument records a compliance document for an installation and
// returns a download location for it. Rendering the document content happens
// out of band; only the record and its URL live here.
func (s *documentService) GenerateDocument(ctx context.Context, actorID string, actorRole domain.UserRole, installationID string, docType domain.DocumentType) (*domain.ComplianceDocument, error) {
	if actorRole != domain.UserRoleAdmin {
		return nil, ErrUnauthorized
	}

	switch docType {
	case domain.DocumentTypeSTCForm, domain.DocumentTypeAssignmentForm, domain.DocumentTypeComplianceReport, domain.DocumentTypeOther:
	default:
		return nil, validationErrorf("unknown document type %q", docType)
	}

	if _, err := s.instRepo.GetByID(ctx, installationID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/documents/%d_%s.pdf", installationID, time.Now().UnixNano(), docType)
	url, err := s.store.GeneratePresignedDownloadURL(ctx, key, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	doc := &domain.ComplianceDocument{
		InstallationID: installationID,
		DocumentType:   docType,
		DocumentURL:    url,
		GeneratedBy:    actorID,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, actorRole domain.UserRole, installationID string) ([]domain.ComplianceDocument, error) {
	if actorRole != domain.UserRoleAdmin {
		return nil, ErrUnauthorized
	}
	return s.docRepo.ListByInstallation(ctx, installationID)
}
