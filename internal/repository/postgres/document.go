package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository"
)

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, d *domain.ComplianceDocument) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.GeneratedAt.IsZero() {
		d.GeneratedAt = time.Now()
	}
	query := `INSERT INTO compliance_documents (id, installation_id, document_type, document_url, generated_by, generated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.InstallationID, d.DocumentType, d.DocumentURL, d.GeneratedBy, d.GeneratedAt)
	return err
}

func (r *documentRepository) ListByInstallation(ctx context.Context, installationID string) ([]domain.ComplianceDocument, error) {
	query := `SELECT id, installation_id, document_type, document_url, generated_by, generated_at FROM compliance_documents WHERE installation_id = $1 ORDER BY generated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, installationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.ComplianceDocument
	for rows.Next() {
		var d domain.ComplianceDocument
		if err := rows.Scan(&d.ID, &d.InstallationID, &d.DocumentType, &d.DocumentURL, &d.GeneratedBy, &d.GeneratedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
