package http

import (
	"net/http"
	"strconv"

	"stc-compliance-backend/internal/service"
	"stc-compliance-backend/internal/stc"
)

// CalculatorHandler serves the public entitlement estimator. No auth: the
// calculator backs the public-facing quote widget.
type CalculatorHandler struct {
	calcSvc service.CalculatorService
}

func NewCalculatorHandler(calcSvc service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calcSvc: calcSvc}
}

func (h *CalculatorHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SystemSizeKw float64 `json:"system_size_kw"`
		Zone         int     `json:"zone"`
		Postcode     string  `json:"postcode"`
		UnitPrice    float64 `json:"unit_price"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.calcSvc.Estimate(r.Context(), stc.Input{
		SystemSizeKw: req.SystemSizeKw,
		Zone:         req.Zone,
		UnitPrice:    req.UnitPrice,
	}, req.Postcode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CalculatorHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := int32(10)
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = int32(v)
	}

	calculations, err := h.calcSvc.RecentCalculations(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"calculations": calculations})
}
