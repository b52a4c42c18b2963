package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/service"
)

type DocumentHandler struct {
	docSvc service.DocumentService
}

func NewDocumentHandler(docSvc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docSvc: docSvc}
}

func (h *DocumentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		DocumentType string `json:"document_type"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.docSvc.GenerateDocument(r.Context(), principal.UserID, principal.Role, mux.Vars(r)["id"], domain.DocumentType(req.DocumentType))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	docs, err := h.docSvc.ListDocuments(r.Context(), principal.Role, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}
