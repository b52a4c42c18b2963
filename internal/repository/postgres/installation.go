package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository"
)

const installationColumns = `id, tradie_id, customer_name, customer_email, customer_phone, site_address, site_suburb, site_state, site_postcode, installation_date, system_size_kw, total_panels, status, credits_assigned, assignment_date, notes, created_at, updated_at`

type installationRepository struct {
	db *sql.DB
}

func NewInstallationRepository(db *sql.DB) repository.InstallationRepository {
	return &installationRepository{db: db}
}

func scanInstallation(row interface{ Scan(...any) error }) (*domain.Installation, error) {
	inst := &domain.Installation{}
	err := row.Scan(&inst.ID, &inst.TradieID, &inst.CustomerName, &inst.CustomerEmail, &inst.CustomerPhone,
		&inst.SiteAddress, &inst.SiteSuburb, &inst.SiteState, &inst.SitePostcode, &inst.InstallationDate,
		&inst.SystemSizeKw, &inst.TotalPanels, &inst.Status, &inst.CreditsAssigned, &inst.AssignmentDate,
		&inst.Notes, &inst.CreatedAt, &inst.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (r *installationRepository) Create(ctx context.Context, inst *domain.Installation) error {
	if inst.ID == "" {
		inst.ID = uuid.New().String()
	}
	now := time.Now()
	inst.CreatedAt = now
	inst.UpdatedAt = now
	query := `INSERT INTO installations (id, tradie_id, customer_name, customer_email, customer_phone, site_address, site_suburb, site_state, site_postcode, installation_date, system_size_kw, total_panels, status, credits_assigned, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.ExecContext(ctx, query, inst.ID, inst.TradieID, inst.CustomerName, inst.CustomerEmail, inst.CustomerPhone,
		inst.SiteAddress, inst.SiteSuburb, inst.SiteState, inst.SitePostcode, inst.InstallationDate,
		inst.SystemSizeKw, inst.TotalPanels, inst.Status, inst.CreditsAssigned, inst.Notes, now, now)
	return err
}

func (r *installationRepository) GetByID(ctx context.Context, id string) (*domain.Installation, error) {
	query := `SELECT ` + installationColumns + ` FROM installations WHERE id = $1`
	return scanInstallation(r.db.QueryRowContext(ctx, query, id))
}

func (r *installationRepository) list(ctx context.Context, where string, filter any, page, pageSize int32) ([]domain.Installation, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM installations WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, filter).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + installationColumns + ` FROM installations WHERE ` + where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, filter, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var installations []domain.Installation
	for rows.Next() {
		inst, err := scanInstallation(rows)
		if err != nil {
			return nil, 0, err
		}
		installations = append(installations, *inst)
	}
	return installations, count, rows.Err()
}

func (r *installationRepository) ListByTradie(ctx context.Context, tradieID string, page, pageSize int32) ([]domain.Installation, int32, error) {
	return r.list(ctx, "tradie_id = $1", tradieID, page, pageSize)
}

func (r *installationRepository) ListByStatus(ctx context.Context, status domain.InstallationStatus, page, pageSize int32) ([]domain.Installation, int32, error) {
	return r.list(ctx, "status = $1", status, page, pageSize)
}

func (r *installationRepository) UpdateDetails(ctx context.Context, inst *domain.Installation) error {
	query := `UPDATE installations SET customer_name=$1, customer_email=$2, customer_phone=$3, site_address=$4, site_suburb=$5, site_state=$6, site_postcode=$7, installation_date=$8, system_size_kw=$9, total_panels=$10, updated_at=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, inst.CustomerName, inst.CustomerEmail, inst.CustomerPhone,
		inst.SiteAddress, inst.SiteSuburb, inst.SiteState, inst.SitePostcode, inst.InstallationDate,
		inst.SystemSizeKw, inst.TotalPanels, time.Now(), inst.ID)
	return err
}

func (r *installationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.InstallationStatus, notes string) error {
	query := `UPDATE installations SET status=$1, notes=$2, updated_at=$3 WHERE id=$4 AND status=$5`
	res, err := r.db.ExecContext(ctx, query, to, notes, time.Now(), id, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrStatusConflict
	}
	return nil
}

func (r *installationRepository) ListSubmittedBefore(ctx context.Context, cutoff time.Time) ([]domain.Installation, error) {
	query := `SELECT ` + installationColumns + ` FROM installations WHERE status = $1 AND updated_at < $2 ORDER BY updated_at ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.InstallationStatusSubmitted, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installations []domain.Installation
	for rows.Next() {
		inst, err := scanInstallation(rows)
		if err != nil {
			return nil, err
		}
		installations = append(installations, *inst)
	}
	return installations, rows.Err()
}
