// Package projection computes forward-looking real-estate investment metrics from a
// projection curve. Calculators are synchronous and hold no state beyond a logger and
// a clock; malformed numeric input is logged and answered with a documented default.
package projection

import (
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/models"
	"github.com/ternarybob/propcast/internal/services/curves"
)

const (
	// DefaultROIPerYear is returned by the yield averages when they cannot be computed
	DefaultROIPerYear = 8.0

	// BreakEvenHorizon is the number of years searched for a rental break-even,
	// independent of curve length
	BreakEvenHorizon = 10
	// BreakEvenNotFound means no break-even within BreakEvenHorizon
	BreakEvenNotFound = BreakEvenHorizon + 1

	// AppreciationExtrapolationRate compounds the last cumulative appreciation past the curve
	AppreciationExtrapolationRate = 0.08
	// DirectYieldExtrapolationRate compounds the last ROI of direct-percentage curves
	DirectYieldExtrapolationRate = 0.10
	// RentRateExtrapolationRate compounds the last rent rate of per-area curves
	RentRateExtrapolationRate = 0.05

	// DirectYieldCompounding grows the first-year ROI of direct-percentage curves
	// year over year when averaging ROI
	DirectYieldCompounding = 1.1

	// DefaultHandoverGrowthRate is the annual off-plan price growth before handover
	DefaultHandoverGrowthRate = 0.10
	// HandoverFinalYearMarkup replaces the growth rate in the year before handover
	HandoverFinalYearMarkup = 0.20

	monthsPerYear = 12
)

// Engine runs the projection calculators
type Engine struct {
	logger arbor.ILogger
	now    func() time.Time
}

// Option configures the Engine
type Option func(*Engine)

// WithClock sets the clock used to resolve the current year
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a new projection engine
func NewEngine(logger arbor.ILogger, opts ...Option) *Engine {
	e := &Engine{
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentYear returns the calendar year projections are based on
func (e *Engine) CurrentYear() int {
	return e.now().Year()
}

// Window returns a view of the curve starting offset years from now.
// An empty curve is replaced by the default curve.
func (e *Engine) Window(curve models.ProjectionCurve, offset int) Window {
	if curve.Len() == 0 {
		e.degraded("window", "empty curve").
			Str("curve", curve.Key).
			Msg("Calculator degraded, substituting default curve")
		curve = curves.DefaultCurve()
	}
	if offset < 0 {
		e.degraded("window", "negative offset").
			Int("offset", offset).
			Msg("Calculator degraded, using offset 0")
		offset = 0
	}
	return Window{curve: curve, offset: offset}
}

func (e *Engine) degraded(calculator, reason string) arbor.ILogEvent {
	return e.logger.Warn().
		Str("calculator", calculator).
		Str("reason", reason)
}
