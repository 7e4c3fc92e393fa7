package projection

import (
	"math"

	"github.com/ternarybob/propcast/internal/models"
)

// Window is a view over a curve whose year 1 is curve index Offset.
// Offset 0 is "from now"; a handover window starts at the handover offset.
type Window struct {
	curve  models.ProjectionCurve
	offset int
}

// Curve returns the underlying curve
func (w Window) Curve() models.ProjectionCurve {
	return w.curve
}

// Offset returns the index of window year 1
func (w Window) Offset() int {
	return w.offset
}

// Basis returns the curve's yield basis
func (w Window) Basis() models.YieldBasis {
	return w.curve.Basis
}

// Extrapolated reports whether window year y reads past the native curve
func (w Window) Extrapolated(year int) bool {
	return w.offset+year-1 >= w.curve.Len()
}

// CumulativeAppreciation is the appreciation percent gained from the window start
// through the end of window year y.
func (w Window) CumulativeAppreciation(year int) float64 {
	if year <= 0 {
		return 0
	}
	return appreciationPercentAt(w.curve, w.offset+year-1) - appreciationPercentAt(w.curve, w.offset-1)
}

// Yield is the curve's long-term yield figure for window year y
func (w Window) Yield(year int) float64 {
	if year <= 0 {
		return 0
	}
	return yieldAt(w.curve, w.offset+year-1)
}

// Extrapolate compounds value at rate for excess years
func Extrapolate(value, rate float64, excess int) float64 {
	if excess <= 0 {
		return value
	}
	return value * math.Pow(1+rate, float64(excess))
}

// appreciationPercentAt reads the cumulative appreciation at a curve index.
// Index -1 is "now" and carries no appreciation.
func appreciationPercentAt(curve models.ProjectionCurve, idx int) float64 {
	n := curve.Len()
	if idx < 0 || n == 0 {
		return 0
	}
	if idx < n {
		return curve.Points[idx].AppreciationPercent
	}
	return Extrapolate(curve.Points[n-1].AppreciationPercent, AppreciationExtrapolationRate, idx-(n-1))
}

func yieldAt(curve models.ProjectionCurve, idx int) float64 {
	n := curve.Len()
	if idx < 0 || n == 0 {
		return 0
	}
	if idx < n {
		return curve.Points[idx].Yield
	}
	return Extrapolate(curve.Points[n-1].Yield, yieldExtrapolationRate(curve.Basis), idx-(n-1))
}

func yieldExtrapolationRate(basis models.YieldBasis) float64 {
	if basis == models.YieldBasisPerArea {
		return RentRateExtrapolationRate
	}
	return DirectYieldExtrapolationRate
}
