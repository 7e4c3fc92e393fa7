package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ternarybob/propcast/internal/models"
)

// formatMoney renders an amount with thousands separators and two decimals
func formatMoney(amount float64) string {
	s := strconv.FormatFloat(models.Round2(amount), 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	var sb strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}
	return sign + sb.String() + "." + frac
}

// formatProjectionReport formats a projection report as markdown
func formatProjectionReport(report *models.ProjectionReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Projection: %s / %s\n\n", report.Locality, report.PropertyType))
	sb.WriteString(fmt.Sprintf("**Horizon:** %d years (%s curve)\n", report.HorizonYears, report.Basis))
	if report.HandoverYear > 0 {
		sb.WriteString(fmt.Sprintf("**Handover:** %d at %s\n", report.HandoverYear, formatMoney(report.HandoverPrice)))
	}
	sb.WriteString(fmt.Sprintf("**Cash invested:** %s\n", formatMoney(report.CashInvested)))
	sb.WriteString(fmt.Sprintf("**Future value:** %s\n", formatMoney(report.FutureValue)))
	sb.WriteString(fmt.Sprintf("**Capital gains:** %s\n", formatMoney(report.CapitalGains)))
	sb.WriteString(fmt.Sprintf("**Average annual rent:** %s\n", formatMoney(report.AverageAnnualRent)))
	sb.WriteString(fmt.Sprintf("**Average annual ROI:** %.2f%%\n", report.AverageAnnualROIPercent))
	sb.WriteString(fmt.Sprintf("**Cumulative ROI:** %.2f%%\n", report.CumulativeROIPercent))
	sb.WriteString(fmt.Sprintf("**Break-even year:** %d\n\n", report.BreakEvenYear))

	if len(report.AppreciationTimeline) > 0 {
		sb.WriteString("| Year | Appreciation % | ROI % |\n")
		sb.WriteString("|------|----------------|-------|\n")
		for i, entry := range report.AppreciationTimeline {
			roi := "-"
			if i < len(report.ROITimeline) {
				roi = fmt.Sprintf("%.2f", report.ROITimeline[i].ROI)
			}
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %s |\n", entry.Year, entry.AppreciationPercent, roi))
		}
	}

	return sb.String()
}

// formatHandoverPrice formats a handover price projection as markdown
func formatHandoverPrice(listingPrice float64, handoverYear int, price float64) string {
	var sb strings.Builder
	sb.WriteString("## Handover Price\n\n")
	sb.WriteString(fmt.Sprintf("**Listing price:** %s\n", formatMoney(listingPrice)))
	sb.WriteString(fmt.Sprintf("**Handover year:** %d\n", handoverYear))
	sb.WriteString(fmt.Sprintf("**Projected price at handover:** %s\n", formatMoney(price)))
	return sb.String()
}

// formatCurves formats a curve listing as markdown
func formatCurves(curves []models.ProjectionCurve) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Projection Curves (%d)\n\n", len(curves)))

	if len(curves) == 0 {
		sb.WriteString("No curves found. Unknown localities use the default curve.\n")
		return sb.String()
	}

	sb.WriteString("| Locality | Property type | Basis | Years | Final appreciation % |\n")
	sb.WriteString("|----------|---------------|-------|-------|----------------------|\n")
	for _, curve := range curves {
		final := 0.0
		if n := len(curve.Points); n > 0 {
			final = curve.Points[n-1].AppreciationPercent
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %.2f |\n",
			curve.Locality, curve.PropertyType, curve.Basis, len(curve.Points), final))
	}
	return sb.String()
}
