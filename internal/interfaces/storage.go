// -----------------------------------------------------------------------
// Last Modified: Monday, 19th October 2026 10:12:40 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/propcast/internal/models"
)

// ErrCurveNotFound is returned when no curve is stored for a (locality, property type) pair
var ErrCurveNotFound = errors.New("curve not found")

// CurveStorage - interface for projection curve persistence
type CurveStorage interface {
	// SaveCurve inserts or replaces a curve under its normalized key
	SaveCurve(ctx context.Context, curve *models.ProjectionCurve) error

	// GetCurve returns ErrCurveNotFound when the pair has no curve
	GetCurve(ctx context.Context, locality, propertyType string) (*models.ProjectionCurve, error)

	// ListCurves returns all stored curves ordered by key
	ListCurves(ctx context.Context) ([]models.ProjectionCurve, error)

	// DeleteCurve returns ErrCurveNotFound when the pair has no curve
	DeleteCurve(ctx context.Context, locality, propertyType string) error
}

// StorageManager - interface for managing the storage backend
type StorageManager interface {
	CurveStorage() CurveStorage

	// LoadCurvesFromFiles seeds curve storage from dataset files in a directory
	LoadCurvesFromFiles(ctx context.Context, dirPath string) error

	Close() error
}
