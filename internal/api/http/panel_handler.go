package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/service"
)

type PanelHandler struct {
	panelSvc service.PanelService
}

func NewPanelHandler(panelSvc service.PanelService) *PanelHandler {
	return &PanelHandler{panelSvc: panelSvc}
}

func (h *PanelHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		SerialNumber    string `json:"serial_number"`
		Manufacturer    string `json:"manufacturer"`
		Model           string `json:"model"`
		Wattage         *int32 `json:"wattage"`
		SerialImageKey  string `json:"serial_image_key"`
		InstallImageKey string `json:"installation_image_key"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	panel, err := h.panelSvc.AddPanel(r.Context(), principal.UserID, &domain.Panel{
		InstallationID:  mux.Vars(r)["id"],
		SerialNumber:    req.SerialNumber,
		Manufacturer:    req.Manufacturer,
		Model:           req.Model,
		Wattage:         req.Wattage,
		SerialImageURL:  req.SerialImageKey,
		InstallImageURL: req.InstallImageKey,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, panel)
}

func (h *PanelHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	panels, err := h.panelSvc.ListPanels(r.Context(), principal.UserID, principal.Role, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"panels": panels})
}

func (h *PanelHandler) UploadURLs(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		ContentType string `json:"content_type"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upload, err := h.panelSvc.EvidenceUploadURLs(r.Context(), principal.UserID, mux.Vars(r)["id"], req.ContentType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

func (h *PanelHandler) VerifySerials(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	results, summary, err := h.panelSvc.VerifyPanels(r.Context(), principal.UserID, principal.Role, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"summary": summary,
	})
}
