package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
	"github.com/ternarybob/propcast/internal/services/curves"
)

// CurveHandler manages projection curves
type CurveHandler struct {
	curves interfaces.CurveService
	logger arbor.ILogger
}

func NewCurveHandler(curves interfaces.CurveService, logger arbor.ILogger) *CurveHandler {
	return &CurveHandler{
		curves: curves,
		logger: logger,
	}
}

// ListHandler returns every stored curve
// GET /api/curves
func (h *CurveHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	items := h.curves.List(r.Context())
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"curves": items,
		"count":  len(items),
	})
}

// LookupHandler resolves the curve a projection would use, including the default fallback
// GET /api/curves/lookup?locality=&property_type=
func (h *CurveHandler) LookupHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	locality := r.URL.Query().Get("locality")
	propertyType := r.URL.Query().Get("property_type")

	curve := h.curves.Lookup(r.Context(), locality, propertyType)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"curve":    curve,
		"fallback": curves.IsDefault(curve),
	})
}

// SaveHandler validates and upserts a curve
// PUT /api/curves
func (h *CurveHandler) SaveHandler(w http.ResponseWriter, r *http.Request) {
	var curve models.ProjectionCurve
	if !DecodeJSON(w, r, &curve) {
		return
	}

	if err := curve.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.curves.Save(r.Context(), &curve); err != nil {
		WriteServiceError(w, h.logger, err, "save_curve")
		return
	}

	WriteJSON(w, http.StatusOK, curve)
}

// DeleteHandler removes a curve
// DELETE /api/curves?locality=&property_type=
func (h *CurveHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	locality := r.URL.Query().Get("locality")
	propertyType := r.URL.Query().Get("property_type")
	if locality == "" || propertyType == "" {
		WriteError(w, http.StatusBadRequest, "locality and property_type are required")
		return
	}

	err := h.curves.Delete(r.Context(), locality, propertyType)
	if errors.Is(err, interfaces.ErrCurveNotFound) {
		WriteError(w, http.StatusNotFound, "Curve not found")
		return
	}
	if err != nil {
		WriteServiceError(w, h.logger, err, "delete_curve")
		return
	}

	WriteSuccess(w, "Curve deleted")
}

// ReloadHandler rebuilds the in-memory curve snapshot from storage
// POST /api/curves/reload
func (h *CurveHandler) ReloadHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.curves.Reload(r.Context()); err != nil {
		WriteServiceError(w, h.logger, err, "reload_curves")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"curves": len(h.curves.List(r.Context())),
	})
}
