package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository"
)

const panelColumns = `id, installation_id, serial_number, manufacturer, model, wattage, serial_image_url, installation_image_url, verified, cec_approved, created_at`

type panelRepository struct {
	db *sql.DB
}

func NewPanelRepository(db *sql.DB) repository.PanelRepository {
	return &panelRepository{db: db}
}

func (r *panelRepository) Create(ctx context.Context, p *domain.Panel) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	query := `INSERT INTO panels (id, installation_id, serial_number, manufacturer, model, wattage, serial_image_url, installation_image_url, verified, cec_approved, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.InstallationID, p.SerialNumber, p.Manufacturer, p.Model, p.Wattage,
		p.SerialImageURL, p.InstallImageURL, p.Verified, p.CECApproved, p.CreatedAt)
	return err
}

func (r *panelRepository) scanPanels(rows *sql.Rows) ([]domain.Panel, error) {
	defer rows.Close()
	var panels []domain.Panel
	for rows.Next() {
		var p domain.Panel
		if err := rows.Scan(&p.ID, &p.InstallationID, &p.SerialNumber, &p.Manufacturer, &p.Model, &p.Wattage,
			&p.SerialImageURL, &p.InstallImageURL, &p.Verified, &p.CECApproved, &p.CreatedAt); err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}
	return panels, rows.Err()
}

func (r *panelRepository) ListByInstallation(ctx context.Context, installationID string) ([]domain.Panel, error) {
	query := `SELECT ` + panelColumns + ` FROM panels WHERE installation_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, installationID)
	if err != nil {
		return nil, err
	}
	return r.scanPanels(rows)
}

func (r *panelRepository) CountByInstallation(ctx context.Context, installationID string) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM panels WHERE installation_id = $1`, installationID).Scan(&count)
	return count, err
}

func (r *panelRepository) UpdateVerification(ctx context.Context, id string, verified, cecApproved bool) error {
	query := `UPDATE panels SET verified=$1, cec_approved=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, verified, cecApproved, id)
	return err
}

func (r *panelRepository) ListUnverified(ctx context.Context, limit int32) ([]domain.Panel, error) {
	query := `SELECT ` + panelColumns + ` FROM panels WHERE verified = FALSE ORDER BY created_at ASC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return r.scanPanels(rows)
}
