package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository"
)

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, e *domain.AuditLog) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.PerformedAt.IsZero() {
		e.PerformedAt = time.Now()
	}
	details, err := json.Marshal(e.Details)
	if err != nil {
		return err
	}
	query := `INSERT INTO audit_logs (id, installation_id, audit_type, status, details, performed_by, performed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query, e.ID, e.InstallationID, e.AuditType, e.Status, details, e.PerformedBy, e.PerformedAt)
	return err
}

func (r *auditLogRepository) ListByInstallation(ctx context.Context, installationID string) ([]domain.AuditLog, error) {
	query := `SELECT id, installation_id, audit_type, status, details, performed_by, performed_at FROM audit_logs WHERE installation_id = $1 ORDER BY performed_at DESC`
	rows, err := r.db.QueryContext(ctx, query, installationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditLog
	for rows.Next() {
		var e domain.AuditLog
		var details []byte
		if err := rows.Scan(&e.ID, &e.InstallationID, &e.AuditType, &e.Status, &details, &e.PerformedBy, &e.PerformedAt); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, err
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
