package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/service"
)

type InstallationHandler struct {
	instSvc service.InstallationService
}

func NewInstallationHandler(instSvc service.InstallationService) *InstallationHandler {
	return &InstallationHandler{instSvc: instSvc}
}

type installationRequest struct {
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerPhone    string  `json:"customer_phone"`
	SiteAddress      string  `json:"site_address"`
	SiteSuburb       string  `json:"site_suburb"`
	SiteState        string  `json:"site_state"`
	SitePostcode     string  `json:"site_postcode"`
	InstallationDate string  `json:"installation_date"`
	SystemSizeKw     float64 `json:"system_size_kw"`
	TotalPanels      int32   `json:"total_panels"`
}

func (req *installationRequest) toDomain() *domain.Installation {
	return &domain.Installation{
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		SiteAddress:      req.SiteAddress,
		SiteSuburb:       req.SiteSuburb,
		SiteState:        req.SiteState,
		SitePostcode:     req.SitePostcode,
		InstallationDate: req.InstallationDate,
		SystemSizeKw:     req.SystemSizeKw,
		TotalPanels:      req.TotalPanels,
	}
}

func (h *InstallationHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req installationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inst, err := h.instSvc.CreateInstallation(r.Context(), principal.UserID, req.toDomain())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inst)
}

func (h *InstallationHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())
	id := mux.Vars(r)["id"]

	inst, panels, err := h.instSvc.GetInstallation(r.Context(), principal.UserID, principal.Role, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"installation": inst,
		"panels":       panels,
	})
}

func (h *InstallationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())
	page, pageSize := pagingParams(r)

	installations, total, err := h.instSvc.ListMyInstallations(r.Context(), principal.UserID, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"installations": installations,
		"total":         total,
	})
}

func (h *InstallationHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req installationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inst := req.toDomain()
	inst.ID = mux.Vars(r)["id"]

	if err := h.instSvc.UpdateDetails(r.Context(), principal.UserID, inst); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (h *InstallationHandler) CaptureProgress(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())
	id := mux.Vars(r)["id"]

	captured, total, err := h.instSvc.CaptureProgress(r.Context(), principal.UserID, principal.Role, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"captured_panels": captured,
		"total_panels":    total,
		"complete":        captured >= total,
	})
}

func pagingParams(r *http.Request) (page, pageSize int32) {
	page = 1
	pageSize = 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = int32(v)
	}
	return page, pageSize
}
