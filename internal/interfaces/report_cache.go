package interfaces

import (
	"context"

	"github.com/ternarybob/propcast/internal/models"
)

// ReportCache stores materialized projection reports
type ReportCache interface {
	// Get returns false on a miss or on any backend error
	Get(ctx context.Context, key string) (*models.ProjectionReport, bool)

	Set(ctx context.Context, key string, report *models.ProjectionReport) error

	Close() error
}
