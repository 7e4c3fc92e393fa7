// -----------------------------------------------------------------------
// Last Modified: Monday, 19th October 2026 2:31:08 pm
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// API routes - Projections
	mux.HandleFunc("/api/projections", s.app.ProjectionHandler.ProjectHandler)     // POST
	mux.HandleFunc("/api/projections/batch", s.app.ProjectionHandler.BatchHandler) // POST

	// API routes - Off-plan handover
	mux.HandleFunc("/api/handover/price", s.app.HandoverHandler.PriceHandler)   // POST
	mux.HandleFunc("/api/handover/resale", s.app.HandoverHandler.ResaleHandler) // POST

	// API routes - Curves
	mux.HandleFunc("/api/curves", s.handleCurvesRoute)                     // GET (list), PUT (upsert), DELETE
	mux.HandleFunc("/api/curves/lookup", s.app.CurveHandler.LookupHandler) // GET
	mux.HandleFunc("/api/curves/reload", s.handleCurvesReload)             // POST

	// 404 handler for unmatched API routes
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleCurvesRoute routes /api/curves by method
func (s *Server) handleCurvesRoute(w http.ResponseWriter, r *http.Request) {
	RouteCRUD(w, r,
		s.app.CurveHandler.ListHandler,
		nil,
		s.app.CurveHandler.SaveHandler,
		s.app.CurveHandler.DeleteHandler,
	)
}

// handleCurvesReload rebuilds the curve snapshot from storage
func (s *Server) handleCurvesReload(w http.ResponseWriter, r *http.Request) {
	RouteByMethod(w, r, MethodRouter{
		http.MethodPost: s.app.CurveHandler.ReloadHandler,
	})
}
