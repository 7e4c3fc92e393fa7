package projection

import (
	"github.com/ternarybob/propcast/internal/models"
)

// CapitalGains is the value of an asset after a number of window years
type CapitalGains struct {
	FutureValue float64 `json:"future_value"`
	Gains       float64 `json:"capital_gains"`
}

// CumulativeReturn breaks down the total return of an investment over a horizon
type CumulativeReturn struct {
	Appreciation  float64 `json:"appreciation"`
	RentalIncome  float64 `json:"rental_income"`
	InterestPaid  float64 `json:"interest_paid"`
	NetReturn     float64 `json:"net_return"`
	CashInvested  float64 `json:"cash_invested"`
	ROIPercent    float64 `json:"roi_percent"`
	YearsIncluded int     `json:"years_included"`
}

// AverageAnnualROI averages the blended rental yield over window years 1..years.
// Direct-percentage curves use the compounded first-year ROI instead of each year's point.
func (e *Engine) AverageAnnualROI(w Window, years int, params models.InvestmentParameters) float64 {
	if years <= 0 {
		e.degraded("average_annual_roi", "non-positive years").
			Int("years", years).
			Msg("Calculator degraded, using default ROI")
		return DefaultROIPerYear
	}
	if params.Principal <= 0 {
		e.degraded("average_annual_roi", "non-positive principal").
			Float64("principal", params.Principal).
			Msg("Calculator degraded, using default ROI")
		return DefaultROIPerYear
	}

	yieldOf := e.BlendedYieldPercent
	if w.Basis() == models.YieldBasisDirectPercentage {
		yieldOf = e.CompoundedYieldPercent
	}

	total := 0.0
	for year := 1; year <= years; year++ {
		total += yieldOf(w, year, params)
	}
	return total / float64(years)
}

// AverageAnnualRent averages the blended rental income over window years 1..years
func (e *Engine) AverageAnnualRent(w Window, years int, params models.InvestmentParameters) float64 {
	if params.Principal <= 0 {
		e.degraded("average_annual_rent", "non-positive principal").
			Float64("principal", params.Principal).
			Msg("Calculator degraded, returning 0")
		return 0
	}
	if years <= 0 {
		e.degraded("average_annual_rent", "non-positive years").
			Int("years", years).
			Msg("Calculator degraded, using default ROI")
		return DefaultROIPerYear * params.Principal / 100
	}

	if w.Basis() == models.YieldBasisDirectPercentage {
		return e.AverageAnnualROI(w, years, params) * params.Principal / 100
	}

	total := 0.0
	for year := 1; year <= years; year++ {
		total += e.RentalIncomeInYear(w, year, params)
	}
	return total / float64(years)
}

// CapitalGains projects the asset value after window year `years`
func (e *Engine) CapitalGains(w Window, years int, principal float64) CapitalGains {
	if principal <= 0 {
		e.degraded("capital_gains", "non-positive principal").
			Float64("principal", principal).
			Msg("Calculator degraded, returning 0")
		return CapitalGains{}
	}
	if years < 0 {
		e.degraded("capital_gains", "negative years").
			Int("years", years).
			Msg("Calculator degraded, returning 0")
		return CapitalGains{FutureValue: principal}
	}
	if years == 0 {
		return CapitalGains{FutureValue: principal}
	}

	futureValue := principal + e.AppreciationInYear(w, years, principal)
	return CapitalGains{
		FutureValue: futureValue,
		Gains:       futureValue - principal,
	}
}

// CumulativeROIByType sums, per window year, the appreciation gained in that year,
// rental income when the asset is let, less mortgage interest, and relates the total
// to the cash actually invested.
func (e *Engine) CumulativeROIByType(w Window, years int, params models.InvestmentParameters) CumulativeReturn {
	cash := params.Financing.CashInvested(params.Principal)
	result := CumulativeReturn{CashInvested: cash}

	if params.Principal <= 0 {
		e.degraded("cumulative_roi", "non-positive principal").
			Float64("principal", params.Principal).
			Msg("Calculator degraded, returning 0")
		return result
	}
	if years < 0 {
		e.degraded("cumulative_roi", "negative years").
			Int("years", years).
			Msg("Calculator degraded, returning 0")
		return result
	}
	if cash <= 0 {
		e.degraded("cumulative_roi", "no cash invested").
			Float64("down_payment_ratio", params.Financing.DownPaymentRatio).
			Msg("Calculator degraded, returning 0")
		return result
	}

	interest := params.Financing.AnnualInterest(params.Principal)
	previous := 0.0
	for year := 1; year <= years; year++ {
		// increments telescope to the cumulative appreciation at the horizon
		gained := e.AppreciationInYear(w, year, params.Principal)
		result.Appreciation += gained - previous
		previous = gained

		if params.IsRental() {
			result.RentalIncome += e.RentalIncomeInYear(w, year, params)
		}
		result.InterestPaid += interest
	}

	result.YearsIncluded = years
	result.NetReturn = result.Appreciation + result.RentalIncome - result.InterestPaid
	result.ROIPercent = result.NetReturn / cash * 100
	return result
}
