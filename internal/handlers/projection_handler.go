package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
	"github.com/ternarybob/propcast/internal/worker"
)

// BatchRequest holds several projections evaluated together, e.g. to compare localities
type BatchRequest struct {
	Requests []models.ProjectionRequest `json:"requests"`
}

// BatchItem is the outcome of one projection in a batch
type BatchItem struct {
	Report *models.ProjectionReport `json:"report,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// ProjectionHandler serves investment projections
type ProjectionHandler struct {
	service      interfaces.ProjectionService
	pool         *worker.Pool
	maxBatchSize int
	logger       arbor.ILogger
}

func NewProjectionHandler(service interfaces.ProjectionService, pool *worker.Pool, maxBatchSize int, logger arbor.ILogger) *ProjectionHandler {
	return &ProjectionHandler{
		service:      service,
		pool:         pool,
		maxBatchSize: maxBatchSize,
		logger:       logger,
	}
}

// ProjectHandler computes a projection report
// POST /api/projections
func (h *ProjectionHandler) ProjectHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ProjectionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	report, err := h.service.ProjectReport(r.Context(), req)
	if err != nil {
		WriteServiceError(w, h.logger, err, "project")
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// BatchHandler computes several projection reports concurrently.
// Per-item failures are reported inline; the response is 200 unless the batch itself is invalid.
// POST /api/projections/batch
func (h *ProjectionHandler) BatchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var batch BatchRequest
	if !DecodeJSON(w, r, &batch) {
		return
	}

	if len(batch.Requests) == 0 {
		WriteError(w, http.StatusBadRequest, "requests must not be empty")
		return
	}
	if len(batch.Requests) > h.maxBatchSize {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("batch exceeds %d requests", h.maxBatchSize))
		return
	}

	items := make([]BatchItem, len(batch.Requests))
	tasks := make([]worker.Task, len(batch.Requests))
	for i, req := range batch.Requests {
		tasks[i] = func(ctx context.Context) error {
			report, err := h.service.ProjectReport(ctx, req)
			if err != nil {
				return err
			}
			items[i].Report = report
			return nil
		}
	}

	failed := 0
	for i, err := range h.pool.Run(r.Context(), tasks) {
		if err != nil {
			items[i].Error = err.Error()
			failed++
		}
	}

	h.logger.Debug().
		Int("requests", len(items)).
		Int("failed", failed).
		Msg("Batch projection completed")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"results": items,
		"count":   len(items),
		"failed":  failed,
	})
}
