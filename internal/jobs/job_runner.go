package jobs

import (
	"database/sql"

	"stc-compliance-backend/internal/config"
	"stc-compliance-backend/internal/logger"
	"stc-compliance-backend/internal/registry"
	"stc-compliance-backend/internal/repository/postgres"
	"stc-compliance-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	verifier registry.Verifier
	emailSvc service.EmailService
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, verifier registry.Verifier, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		verifier: verifier,
		emailSvc: emailSvc,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.VerifyPanelSerials()
	jr.SendReviewReminders()
}
