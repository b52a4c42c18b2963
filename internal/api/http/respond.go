package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"stc-compliance-backend/internal/lifecycle"
	"stc-compliance-backend/internal/logger"
	"stc-compliance-backend/internal/repository"
	"stc-compliance-backend/internal/service"
	"stc-compliance-backend/internal/stc"
)

var errMissingToken = errors.New("authorization token is not provided")

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service layer errors onto HTTP statuses. Guard
// failures carry the guard reason so clients can tell an incomplete capture
// from a raced transition. Anything unclassified is a server fault: it is
// logged and reported without the internal error text.
func writeServiceError(w http.ResponseWriter, err error) {
	var terr *lifecycle.TransitionError
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrStatusConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &terr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: terr.Error(), Reason: string(terr.Reason)})
	case errors.Is(err, stc.ErrSchemeExpired), errors.Is(err, stc.ErrInvalidZone):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	default:
		logger.Error("Unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
