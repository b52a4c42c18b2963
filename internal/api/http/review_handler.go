package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/service"
)

// ReviewHandler exposes the admin review queue and the status transitions an
// admin drives.
type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

func (h *ReviewHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())
	page, pageSize := pagingParams(r)

	status := domain.InstallationStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.InstallationStatusSubmitted
	}

	installations, total, err := h.reviewSvc.ListByStatus(r.Context(), principal.Role, status, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"installations": installations,
		"total":         total,
	})
}

func (h *ReviewHandler) ListTradies(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	tradies, err := h.reviewSvc.ListTradies(r.Context(), principal.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tradies": tradies,
		"total":   len(tradies),
	})
}

type transitionFunc func(r *http.Request, principal Principal, id, notes string) (*domain.Installation, error)

func (h *ReviewHandler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		Notes string `json:"notes"`
	}
	// An empty body means no notes.
	_ = decodeBody(r, &req)

	inst, err := fn(r, principal, mux.Vars(r)["id"], req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (h *ReviewHandler) StartReview(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, p Principal, id, notes string) (*domain.Installation, error) {
		return h.reviewSvc.StartReview(r.Context(), p.UserID, p.Role, id, notes)
	})
}

func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, p Principal, id, notes string) (*domain.Installation, error) {
		return h.reviewSvc.Approve(r.Context(), p.UserID, p.Role, id, notes)
	})
}

func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, p Principal, id, notes string) (*domain.Installation, error) {
		return h.reviewSvc.Reject(r.Context(), p.UserID, p.Role, id, notes)
	})
}

func (h *ReviewHandler) ClaimCredits(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(r *http.Request, p Principal, id, notes string) (*domain.Installation, error) {
		return h.reviewSvc.MarkCreditsClaimed(r.Context(), p.UserID, p.Role, id, notes)
	})
}
