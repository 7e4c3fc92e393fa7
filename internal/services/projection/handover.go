package projection

import (
	"github.com/ternarybob/propcast/internal/models"
)

// HandoverOffset is the number of years until handover. Ready properties (handoverYear 0)
// and past handovers have offset 0.
func (e *Engine) HandoverOffset(handoverYear int) int {
	if handoverYear == 0 {
		return 0
	}
	diff := handoverYear - e.CurrentYear()
	if diff < 0 {
		e.degraded("handover_offset", "handover in the past").
			Int("handover_year", handoverYear).
			Int("current_year", e.CurrentYear()).
			Msg("Calculator degraded, using offset 0")
		return 0
	}
	return diff
}

// HandoverWindow returns the curve window starting at handover
func (e *Engine) HandoverWindow(curve models.ProjectionCurve, handoverYear int) Window {
	return e.Window(curve, e.HandoverOffset(handoverYear))
}

// PriceAfterHandover applies the curve's appreciation delta between handover and
// yearsAfter years later to the price paid at handover.
func (e *Engine) PriceAfterHandover(curve models.ProjectionCurve, priceAtHandover float64, handoverYear, yearsAfter int) float64 {
	if yearsAfter < 0 {
		e.degraded("price_after_handover", "negative years after handover").
			Int("years_after", yearsAfter).
			Msg("Calculator degraded, returning handover price")
		return priceAtHandover
	}
	return e.CapitalGains(e.HandoverWindow(curve, handoverYear), yearsAfter, priceAtHandover).FutureValue
}

// HandoverPrice projects an off-plan listing price to its handover year
func (e *Engine) HandoverPrice(listingPrice float64, handoverYear int, annualGrowthRate float64) float64 {
	if listingPrice <= 0 {
		e.degraded("handover_price", "non-positive listing price").
			Float64("listing_price", listingPrice).
			Msg("Calculator degraded, returning 0")
		return 0
	}
	if annualGrowthRate < 0 {
		e.degraded("handover_price", "negative growth rate").
			Float64("annual_growth_rate", annualGrowthRate).
			Msg("Calculator degraded, using default growth rate")
		annualGrowthRate = DefaultHandoverGrowthRate
	}
	return HandoverPrice(listingPrice, handoverYear-e.CurrentYear(), annualGrowthRate)
}

// HandoverPrice compounds listingPrice at annualGrowthRate for every year before handover
// except the last, which takes HandoverFinalYearMarkup instead.
func HandoverPrice(listingPrice float64, yearsUntilHandover int, annualGrowthRate float64) float64 {
	if yearsUntilHandover <= 0 {
		return listingPrice
	}
	price := listingPrice
	for year := 1; year < yearsUntilHandover; year++ {
		price *= 1 + annualGrowthRate
	}
	return price * (1 + HandoverFinalYearMarkup)
}
