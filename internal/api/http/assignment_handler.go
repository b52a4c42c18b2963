package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"stc-compliance-backend/internal/service"
)

type AssignmentHandler struct {
	assignSvc service.AssignmentService
}

func NewAssignmentHandler(assignSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignSvc: assignSvc}
}

func (h *AssignmentHandler) AssignCredits(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		SignatureKey  string `json:"signature_key"`
		AgreedToTerms bool   `json:"agreed_to_terms"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.assignSvc.AssignCredits(r.Context(), principal.UserID, principal.Role, mux.Vars(r)["id"], req.SignatureKey, req.AgreedToTerms)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	assignment, err := h.assignSvc.GetAssignment(r.Context(), principal.UserID, principal.Role, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) SignatureUploadURL(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	key, url, err := h.assignSvc.SignatureUploadURL(r.Context(), principal.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"signature_key": key,
		"upload_url":    url,
	})
}
