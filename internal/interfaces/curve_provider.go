package interfaces

import (
	"context"

	"github.com/ternarybob/propcast/internal/models"
)

// CurveProvider resolves the curve for a (locality, property type) pair.
// Lookup never fails: unknown pairs resolve to the default curve.
// Generation changes whenever the curve set changes, so derived results can be keyed on it.
type CurveProvider interface {
	Lookup(ctx context.Context, locality, propertyType string) models.ProjectionCurve
	Generation() uint64
}
