package postgres

import (
	"database/sql"

	"stc-compliance-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.InstallationRepository
	repository.PanelRepository
	repository.AssignmentRepository
	repository.CalculationRepository
	repository.DocumentRepository
	repository.AuditLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		InstallationRepository: NewInstallationRepository(db),
		PanelRepository:        NewPanelRepository(db),
		AssignmentRepository:   NewAssignmentRepository(db),
		CalculationRepository:  NewCalculationRepository(db),
		DocumentRepository:     NewDocumentRepository(db),
		AuditLogRepository:     NewAuditLogRepository(db),
	}
}
