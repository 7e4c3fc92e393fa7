package projection

import (
	"github.com/ternarybob/propcast/internal/models"
)

// BreakEvenYear returns the first window year whose cumulative blended rental income
// covers the principal, or BreakEvenNotFound when that does not happen within
// BreakEvenHorizon years. The search always covers window years 1..BreakEvenHorizon,
// so curves shorter than that are extrapolated rather than cut off at their last point.
func (e *Engine) BreakEvenYear(w Window, params models.InvestmentParameters) int {
	if params.Principal <= 0 {
		e.degraded("break_even", "non-positive principal").
			Float64("principal", params.Principal).
			Msg("Calculator degraded, no break-even")
		return BreakEvenNotFound
	}

	cumulative := 0.0
	for year := 1; year <= BreakEvenHorizon; year++ {
		cumulative += e.RentalIncomeInYear(w, year, params)
		if cumulative >= params.Principal {
			return year
		}
	}
	return BreakEvenNotFound
}

// CumulativeRent is the blended rental income summed over window years 1..years
func (e *Engine) CumulativeRent(w Window, years int, params models.InvestmentParameters) float64 {
	total := 0.0
	for year := 1; year <= years; year++ {
		total += e.RentalIncomeInYear(w, year, params)
	}
	return total
}
