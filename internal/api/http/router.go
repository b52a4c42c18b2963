package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"stc-compliance-backend/internal/security"
	"stc-compliance-backend/internal/service"
	"stc-compliance-backend/internal/storage"
)

// Services bundles everything the router wires handlers to.
type Services struct {
	Auth         service.AuthService
	Installation service.InstallationService
	Panel        service.PanelService
	Assignment   service.AssignmentService
	Review       service.ReviewService
	Calculator   service.CalculatorService
	Document     service.DocumentService
}

// NewRouter builds the full API surface. Auth, the calculator and the mock
// storage endpoints are public; everything else requires an access token.
func NewRouter(svcs Services, tm security.TokenManager, mockStorage *storage.MockStorageService) *mux.Router {
	router := mux.NewRouter()

	authHandler := NewAuthHandler(svcs.Auth)
	instHandler := NewInstallationHandler(svcs.Installation)
	panelHandler := NewPanelHandler(svcs.Panel)
	assignHandler := NewAssignmentHandler(svcs.Assignment)
	reviewHandler := NewReviewHandler(svcs.Review)
	calcHandler := NewCalculatorHandler(svcs.Calculator)
	docHandler := NewDocumentHandler(svcs.Document)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public endpoints
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/calculator/estimate", calcHandler.Estimate).Methods(http.MethodPost)

	if mockStorage != nil {
		uploadHandler := NewEvidenceUploadHandler(mockStorage)
		api.HandleFunc("/upload/{token}", uploadHandler.HandleMockUpload).Methods(http.MethodPut)
		api.HandleFunc("/download/{key}", uploadHandler.HandleMockDownload).Methods(http.MethodGet)
	}

	// Authenticated endpoints
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tm))

	authed.HandleFunc("/installations", instHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/installations", instHandler.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/installations/{id}", instHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/installations/{id}", instHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/installations/{id}/progress", instHandler.CaptureProgress).Methods(http.MethodGet)

	authed.HandleFunc("/installations/{id}/panels", panelHandler.Add).Methods(http.MethodPost)
	authed.HandleFunc("/installations/{id}/panels", panelHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/installations/{id}/panels/upload-urls", panelHandler.UploadURLs).Methods(http.MethodPost)

	authed.HandleFunc("/installations/{id}/assignment", assignHandler.AssignCredits).Methods(http.MethodPost)
	authed.HandleFunc("/installations/{id}/assignment", assignHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/installations/{id}/assignment/signature-url", assignHandler.SignatureUploadURL).Methods(http.MethodPost)

	authed.HandleFunc("/calculator/history", calcHandler.Recent).Methods(http.MethodGet)

	// Admin endpoints. Role checks live in the services; these routes just
	// carry the principal through.
	authed.HandleFunc("/admin/installations", reviewHandler.ListByStatus).Methods(http.MethodGet)
	authed.HandleFunc("/admin/tradies", reviewHandler.ListTradies).Methods(http.MethodGet)
	authed.HandleFunc("/admin/installations/{id}/start-review", reviewHandler.StartReview).Methods(http.MethodPost)
	authed.HandleFunc("/admin/installations/{id}/approve", reviewHandler.Approve).Methods(http.MethodPost)
	authed.HandleFunc("/admin/installations/{id}/reject", reviewHandler.Reject).Methods(http.MethodPost)
	authed.HandleFunc("/admin/installations/{id}/claim-credits", reviewHandler.ClaimCredits).Methods(http.MethodPost)
	authed.HandleFunc("/admin/installations/{id}/verify-serials", panelHandler.VerifySerials).Methods(http.MethodPost)
	authed.HandleFunc("/admin/installations/{id}/documents", docHandler.Generate).Methods(http.MethodPost)
	authed.HandleFunc("/admin/installations/{id}/documents", docHandler.List).Methods(http.MethodGet)

	return router
}
