package curves

import "github.com/ternarybob/propcast/internal/models"

const (
	DefaultLocality     = "default"
	DefaultPropertyType = "default"
)

// defaultPoints: 8% first-year appreciation and ROI, both compounding at 8% a year.
// Never handed out directly; DefaultCurve copies it.
var defaultPoints = [...]models.ProjectionPoint{
	{AppreciationPercent: 8.00, Yield: 8.00},
	{AppreciationPercent: 16.64, Yield: 8.64},
	{AppreciationPercent: 25.97, Yield: 9.33},
	{AppreciationPercent: 36.05, Yield: 10.08},
	{AppreciationPercent: 46.93, Yield: 10.88},
	{AppreciationPercent: 58.69, Yield: 11.75},
	{AppreciationPercent: 71.38, Yield: 12.69},
	{AppreciationPercent: 85.09, Yield: 13.71},
	{AppreciationPercent: 99.90, Yield: 14.81},
	{AppreciationPercent: 115.89, Yield: 15.99},
}

// DefaultCurve returns the system-wide fallback curve
func DefaultCurve() models.ProjectionCurve {
	points := make([]models.ProjectionPoint, len(defaultPoints))
	copy(points, defaultPoints[:])

	return models.ProjectionCurve{
		Key:          models.CurveKey(DefaultLocality, DefaultPropertyType),
		Locality:     DefaultLocality,
		PropertyType: DefaultPropertyType,
		Basis:        models.YieldBasisDirectPercentage,
		Points:       points,
	}
}

// IsDefault reports whether a curve is the fallback curve
func IsDefault(curve models.ProjectionCurve) bool {
	return curve.Key == models.CurveKey(DefaultLocality, DefaultPropertyType)
}
