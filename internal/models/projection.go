package models

import (
	"iter"
	"math"
	"strconv"
)

// FinancingRequest is the wire form of Financing; unset fields take the mortgage defaults
type FinancingRequest struct {
	Mode             FinancingMode `json:"mode" validate:"required,oneof=self_paid mortgage"`
	DownPaymentRatio *float64      `json:"down_payment_ratio,omitempty" validate:"omitempty,gte=0,lte=1"`
	InterestRate     *float64      `json:"interest_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Resolve fills mortgage defaults
func (f FinancingRequest) Resolve() Financing {
	if f.Mode != FinancingMortgage {
		return SelfPaid()
	}
	financing := Mortgage()
	if f.DownPaymentRatio != nil {
		financing.DownPaymentRatio = *f.DownPaymentRatio
	}
	if f.InterestRate != nil {
		financing.InterestRate = *f.InterestRate
	}
	return financing
}

// Handover years accepted at every boundary. Keep in step with the handover_year validate tag.
const (
	MinHandoverYear = 1900
	MaxHandoverYear = 2200
)

// ProjectionRequest is the input contract accepted from the report-assembly layer
type ProjectionRequest struct {
	Locality         string           `json:"locality"`
	PropertyType     string           `json:"property_type"`
	Principal        float64          `json:"principal" validate:"gt=0"`
	PropertyArea     float64          `json:"property_area,omitempty" validate:"gte=0"`
	HorizonYears     int              `json:"horizon_years" validate:"gte=0,lte=100"`
	Financing        FinancingRequest `json:"financing"`
	Usage            Usage            `json:"usage" validate:"required,oneof=rental self_use"`
	HandoverYear     int              `json:"handover_year,omitempty" validate:"omitempty,gte=1900,lte=2200"`
	ShortTermPremium *float64         `json:"short_term_premium,omitempty" validate:"omitempty,gte=0"`
}

// Parameters converts the request into engine parameters
func (r ProjectionRequest) Parameters() InvestmentParameters {
	return InvestmentParameters{
		Principal:        r.Principal,
		PropertyArea:     r.PropertyArea,
		HorizonYears:     r.HorizonYears,
		Financing:        r.Financing.Resolve(),
		Usage:            r.Usage,
		HandoverYear:     r.HandoverYear,
		ShortTermPremium: r.ShortTermPremium,
	}
}

// TimelinePoint is one calendar year of a projected series
type TimelinePoint struct {
	Year  int
	Value float64
}

// ProjectionResult is the engine output bundle. Timelines are lazy and finite;
// callers should range over each one once.
type ProjectionResult struct {
	Locality                string
	PropertyType            string
	Basis                   YieldBasis
	HorizonYears            int
	HandoverYear            int
	FutureValue             float64
	CapitalGains            float64
	AverageAnnualROIPercent float64
	AverageAnnualRent       float64
	CumulativeROIPercent    float64
	CashInvested            float64
	BreakEvenYear           int
	HandoverPrice           float64
	AppreciationTimeline    iter.Seq[TimelinePoint]
	ROITimeline             iter.Seq[TimelinePoint]
}

// AppreciationEntry is a report row of the appreciation timeline
type AppreciationEntry struct {
	Year                string  `json:"year"`
	AppreciationPercent float64 `json:"appreciation_percent"`
}

// ROIEntry is a report row of the ROI timeline
type ROIEntry struct {
	Year string  `json:"year"`
	ROI  float64 `json:"roi"`
}

// ProjectionReport is the output contract returned to the report-assembly layer
type ProjectionReport struct {
	Locality                string              `json:"locality"`
	PropertyType            string              `json:"property_type"`
	Basis                   YieldBasis          `json:"basis"`
	HorizonYears            int                 `json:"horizon_years"`
	HandoverYear            int                 `json:"handover_year,omitempty"`
	FutureValue             float64             `json:"future_value"`
	CapitalGains            float64             `json:"capital_gains"`
	AverageAnnualROIPercent float64             `json:"average_annual_roi_percent"`
	AverageAnnualRent       float64             `json:"average_annual_rent"`
	CumulativeROIPercent    float64             `json:"cumulative_roi_percent"`
	CashInvested            float64             `json:"cash_invested"`
	BreakEvenYear           int                 `json:"break_even_year"`
	HandoverPrice           float64             `json:"handover_price,omitempty"`
	AppreciationTimeline    []AppreciationEntry `json:"appreciation_timeline"`
	ROITimeline             []ROIEntry          `json:"roi_timeline"`
}

// Report materializes the result; the timelines are consumed
func (r *ProjectionResult) Report() *ProjectionReport {
	report := &ProjectionReport{
		Locality:                r.Locality,
		PropertyType:            r.PropertyType,
		Basis:                   r.Basis,
		HorizonYears:            r.HorizonYears,
		HandoverYear:            r.HandoverYear,
		FutureValue:             Round2(r.FutureValue),
		CapitalGains:            Round2(r.CapitalGains),
		AverageAnnualROIPercent: Round2(r.AverageAnnualROIPercent),
		AverageAnnualRent:       Round2(r.AverageAnnualRent),
		CumulativeROIPercent:    Round2(r.CumulativeROIPercent),
		CashInvested:            Round2(r.CashInvested),
		BreakEvenYear:           r.BreakEvenYear,
		HandoverPrice:           Round2(r.HandoverPrice),
		AppreciationTimeline:    []AppreciationEntry{},
		ROITimeline:             []ROIEntry{},
	}

	if r.AppreciationTimeline != nil {
		for p := range r.AppreciationTimeline {
			report.AppreciationTimeline = append(report.AppreciationTimeline, AppreciationEntry{
				Year:                strconv.Itoa(p.Year),
				AppreciationPercent: Round2(p.Value),
			})
		}
	}
	if r.ROITimeline != nil {
		for p := range r.ROITimeline {
			report.ROITimeline = append(report.ROITimeline, ROIEntry{
				Year: strconv.Itoa(p.Year),
				ROI:  Round2(p.Value),
			})
		}
	}

	return report
}

// Round2 rounds to two decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
