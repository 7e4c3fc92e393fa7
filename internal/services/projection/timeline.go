package projection

import (
	"iter"

	"github.com/ternarybob/propcast/internal/models"
)

// AppreciationTimeline yields the cumulative appreciation percent of window years 1..years,
// labelled with calendar years.
func (e *Engine) AppreciationTimeline(w Window, years int) iter.Seq[models.TimelinePoint] {
	baseYear := e.CurrentYear() + w.Offset()
	return func(yield func(models.TimelinePoint) bool) {
		for year := 1; year <= years; year++ {
			point := models.TimelinePoint{Year: baseYear + year, Value: w.CumulativeAppreciation(year)}
			if !yield(point) {
				return
			}
		}
	}
}

// ROITimeline yields the blended rental yield percent of window years 1..years
func (e *Engine) ROITimeline(w Window, years int, params models.InvestmentParameters) iter.Seq[models.TimelinePoint] {
	baseYear := e.CurrentYear() + w.Offset()
	return func(yield func(models.TimelinePoint) bool) {
		for year := 1; year <= years; year++ {
			point := models.TimelinePoint{Year: baseYear + year, Value: e.BlendedYieldPercent(w, year, params)}
			if !yield(point) {
				return
			}
		}
	}
}
