package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository"
)

type assignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) CreateAndSubmit(ctx context.Context, a *domain.RightsAssignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `INSERT INTO rights_assignments (id, installation_id, tradie_id, signature_key, agreed_to_terms, signed_at)
	           VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.ExecContext(ctx, insert, a.ID, a.InstallationID, a.TradieID, a.SignatureKey, a.AgreedToTerms, a.SignedAt); err != nil {
		return err
	}

	// credits_assigned flips true exactly once; a raced or repeated submit
	// matches zero rows and rolls the insert back with it.
	update := `UPDATE installations SET status=$1, credits_assigned=TRUE, assignment_date=$2, updated_at=$3 WHERE id=$4 AND status=$5 AND credits_assigned=FALSE`
	res, err := tx.ExecContext(ctx, update, domain.InstallationStatusSubmitted, a.SignedAt, time.Now(), a.InstallationID, domain.InstallationStatusDraft)
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

	return tx.Commit()
}

func (r *assignmentRepository) GetByInstallation(ctx context.Context, installationID string) (*domain.RightsAssignment, error) {
	a := &domain.RightsAssignment{}
	query := `SELECT id, installation_id, tradie_id, signature_key, agreed_to_terms, signed_at FROM rights_assignments WHERE installation_id = $1`
	err := r.db.QueryRowContext(ctx, query, installationID).Scan(&a.ID, &a.InstallationID, &a.TradieID, &a.SignatureKey, &a.AgreedToTerms, &a.SignedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
