package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/common"
	"github.com/ternarybob/propcast/internal/interfaces"
)

// APIHandler serves the system endpoints
type APIHandler struct {
	curves interfaces.CurveService
	logger arbor.ILogger
}

func NewAPIHandler(curves interfaces.CurveService, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		curves: curves,
		logger: logger,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"curves": len(h.curves.List(r.Context())),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
