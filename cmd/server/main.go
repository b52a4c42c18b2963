package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "stc-compliance-backend/internal/api/http"
	"stc-compliance-backend/internal/config"
	"stc-compliance-backend/internal/jobs"
	"stc-compliance-backend/internal/logger"
	"stc-compliance-backend/internal/registry"
	"stc-compliance-backend/internal/repository/postgres"
	"stc-compliance-backend/internal/scheduler"
	"stc-compliance-backend/internal/security"
	"stc-compliance-backend/internal/service"
	"stc-compliance-backend/internal/stc"
	"stc-compliance-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting STC Compliance Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Storage Service
	var storageService storage.Interface
	var mockStorage *storage.MockStorageService
	if cfg.Storage.Type == "" || cfg.Storage.Type == "mock" {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err = storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	} else {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}

	// Initialize Registry Verifier
	var verifier registry.Verifier
	if cfg.Registry.BaseURL != "" {
		logger.Info("Using REC registry client", "base_url", cfg.Registry.BaseURL)
		verifier = registry.NewClient(cfg.Registry.BaseURL, cfg.Registry.APIKey, time.Duration(cfg.Registry.TimeoutSeconds)*time.Second)
	} else {
		logger.Info("No registry endpoint configured, using format-only stub verifier")
		verifier = registry.NewStubVerifier()
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		fmt.Sprintf("%d", cfg.SMTP.Port),
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	scheme := stc.Scheme{
		EndYear:         cfg.Scheme.EndYear,
		ZoneMultipliers: cfg.Scheme.ZoneMultipliers,
	}
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	instSvc := service.NewInstallationService(store.InstallationRepository, store.PanelRepository, store.UserRepository)
	panelSvc := service.NewPanelService(store.PanelRepository, store.InstallationRepository, store.AuditLogRepository, verifier, storageService)
	assignSvc := service.NewAssignmentService(store.AssignmentRepository, store.InstallationRepository, store.PanelRepository, storageService)
	reviewSvc := service.NewReviewService(store.InstallationRepository, store.UserRepository, emailSvc)
	calcSvc := service.NewCalculatorService(scheme, cfg.Scheme.DefaultUnitPrice, store.CalculationRepository)
	docSvc := service.NewDocumentService(store.DocumentRepository, store.InstallationRepository, storageService)

	// Initialize Router
	router := httpapi.NewRouter(httpapi.Services{
		Auth:         authSvc,
		Installation: instSvc,
		Panel:        panelSvc,
		Assignment:   assignSvc,
		Review:       reviewSvc,
		Calculator:   calcSvc,
		Document:     docSvc,
	}, tokenManager, mockStorage)

	// Start scheduler alongside the API server
	jobRunner := jobs.NewJobRunner(db, store, verifier, emailSvc, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
