package interfaces

import (
	"context"

	"github.com/ternarybob/propcast/internal/models"
)

// ProjectionService - the request boundary of the projection engine
type ProjectionService interface {
	Project(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionResult, error)
	ProjectReport(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionReport, error)
	HandoverPrice(listingPrice float64, handoverYear int, annualGrowthRate *float64) (float64, error)
	PriceAfterHandover(ctx context.Context, locality, propertyType string, priceAtHandover float64, handoverYear, yearsAfter int) (float64, error)
}

// CurveService - curve provider with write-through management operations
type CurveService interface {
	CurveProvider
	Get(ctx context.Context, locality, propertyType string) (*models.ProjectionCurve, error)
	List(ctx context.Context) []models.ProjectionCurve
	Save(ctx context.Context, curve *models.ProjectionCurve) error
	Delete(ctx context.Context, locality, propertyType string) error
	Reload(ctx context.Context) error
}
