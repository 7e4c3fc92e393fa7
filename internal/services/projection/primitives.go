package projection

import (
	"math"

	"github.com/ternarybob/propcast/internal/models"
)

// Income is the annual rental income of one year
type Income struct {
	LongTerm  float64 `json:"long_term"`
	ShortTerm float64 `json:"short_term"`
	Blended   float64 `json:"blended"`
}

// AppreciationInYear is the absolute value gained from the window start through year y.
// Year 0 carries no appreciation.
func (e *Engine) AppreciationInYear(w Window, year int, principal float64) float64 {
	if year <= 0 {
		return 0
	}
	if principal <= 0 {
		e.degraded("appreciation_in_year", "non-positive principal").
			Float64("principal", principal).
			Msg("Calculator degraded, returning 0")
		return 0
	}
	if w.Extrapolated(year) {
		e.logger.Debug().
			Str("curve", w.curve.Key).
			Int("year", year).
			Msg("Extrapolating appreciation past curve data")
	}
	return principal * w.CumulativeAppreciation(year) / 100
}

// RentalIncome returns the long-term, short-term and blended income of window year y.
// Per-area curves without an area fall back to DefaultROIPerYear of the principal.
func (e *Engine) RentalIncome(w Window, year int, params models.InvestmentParameters) Income {
	if year <= 0 {
		return Income{}
	}
	if params.Principal <= 0 {
		e.degraded("rental_income", "non-positive principal").
			Float64("principal", params.Principal).
			Msg("Calculator degraded, returning 0")
		return Income{}
	}
	if w.Basis().RequiresArea() && params.PropertyArea <= 0 {
		e.degraded("rental_income", "missing property area").
			Str("curve", w.curve.Key).
			Msg("Calculator degraded, using default ROI")
		fallback := DefaultROIPerYear * params.Principal / 100
		return Income{LongTerm: fallback, ShortTerm: fallback, Blended: fallback}
	}

	premium := w.curve.EffectivePremium(params.ShortTermPremium)
	longYield := w.Yield(year)
	shortYield := premium.Apply(longYield)

	long := e.yieldToIncome(w.Basis(), longYield, params)
	short := e.yieldToIncome(w.Basis(), shortYield, params)

	return Income{
		LongTerm:  long,
		ShortTerm: short,
		Blended:   (long + short) / 2,
	}
}

// RentalIncomeInYear is the blended annual rental income used by every aggregate
func (e *Engine) RentalIncomeInYear(w Window, year int, params models.InvestmentParameters) float64 {
	return e.RentalIncome(w, year, params).Blended
}

// BlendedYieldPercent is the blended rental yield of year y as a percent of principal.
// Direct-percentage curves answer from the curve itself rather than from income.
func (e *Engine) BlendedYieldPercent(w Window, year int, params models.InvestmentParameters) float64 {
	if year <= 0 {
		return 0
	}
	if w.Basis() == models.YieldBasisDirectPercentage {
		premium := w.curve.EffectivePremium(params.ShortTermPremium)
		long := w.Yield(year)
		return (long + premium.Apply(long)) / 2
	}
	if params.Principal <= 0 {
		e.degraded("blended_yield", "non-positive principal").
			Float64("principal", params.Principal).
			Msg("Calculator degraded, using default ROI")
		return DefaultROIPerYear
	}
	return e.RentalIncomeInYear(w, year, params) / params.Principal * 100
}

// CompoundedYieldPercent is the blended yield of window year y for a direct-percentage
// curve, taking the first-year ROI and compounding it by DirectYieldCompounding per year.
func (e *Engine) CompoundedYieldPercent(w Window, year int, params models.InvestmentParameters) float64 {
	if year <= 0 {
		return 0
	}
	premium := w.curve.EffectivePremium(params.ShortTermPremium)
	long := w.Yield(1) * math.Pow(DirectYieldCompounding, float64(year-1))
	return (long + premium.Apply(long)) / 2
}

func (e *Engine) yieldToIncome(basis models.YieldBasis, yield float64, params models.InvestmentParameters) float64 {
	if basis == models.YieldBasisPerArea {
		return yield * params.PropertyArea * monthsPerYear
	}
	return yield * params.Principal / 100
}
