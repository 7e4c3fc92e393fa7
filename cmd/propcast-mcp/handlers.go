package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	result := textResult(text)
	result.IsError = true
	return result
}

// optionalFloat returns nil when the argument is absent
func optionalFloat(request mcp.CallToolRequest, key string) *float64 {
	if _, ok := request.GetArguments()[key]; !ok {
		return nil
	}
	value := request.GetFloat(key, 0)
	return &value
}

// projectionRequest builds a request from tool arguments, applying the tool defaults
func projectionRequest(request mcp.CallToolRequest) (models.ProjectionRequest, error) {
	locality, err := request.RequireString("locality")
	if err != nil {
		return models.ProjectionRequest{}, err
	}
	propertyType, err := request.RequireString("property_type")
	if err != nil {
		return models.ProjectionRequest{}, err
	}
	principal, err := request.RequireFloat("principal")
	if err != nil {
		return models.ProjectionRequest{}, err
	}

	return models.ProjectionRequest{
		Locality:     locality,
		PropertyType: propertyType,
		Principal:    principal,
		PropertyArea: request.GetFloat("property_area", 0),
		HorizonYears: request.GetInt("horizon_years", 0),
		Financing: models.FinancingRequest{
			Mode:             models.FinancingMode(request.GetString("financing", string(models.FinancingSelfPaid))),
			DownPaymentRatio: optionalFloat(request, "down_payment_ratio"),
			InterestRate:     optionalFloat(request, "interest_rate"),
		},
		Usage:            models.Usage(request.GetString("usage", string(models.UsageRental))),
		HandoverYear:     request.GetInt("handover_year", 0),
		ShortTermPremium: optionalFloat(request, "short_term_premium"),
	}, nil
}

// handleProjectInvestment implements the project_investment tool
func handleProjectInvestment(service interfaces.ProjectionService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := projectionRequest(request)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		report, err := service.ProjectReport(ctx, req)
		if err != nil {
			logger.Warn().Err(err).Str("locality", req.Locality).Msg("Projection failed")
			return errorResult(fmt.Sprintf("Projection error: %v", err)), nil
		}

		return textResult(formatProjectionReport(report)), nil
	}
}

// handleHandoverPrice implements the handover_price tool
func handleHandoverPrice(service interfaces.ProjectionService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		listingPrice, err := request.RequireFloat("listing_price")
		if err != nil {
			return errorResult("Error: listing_price parameter is required"), nil
		}
		handoverYear, err := request.RequireInt("handover_year")
		if err != nil {
			return errorResult("Error: handover_year parameter is required"), nil
		}
		price, err := service.HandoverPrice(listingPrice, handoverYear, optionalFloat(request, "annual_growth_rate"))
		if err != nil {
			logger.Warn().Err(err).Msg("Handover price failed")
			return errorResult(fmt.Sprintf("Handover price error: %v", err)), nil
		}

		return textResult(formatHandoverPrice(listingPrice, handoverYear, price)), nil
	}
}

// handleResalePrice implements the resale_price tool
func handleResalePrice(service interfaces.ProjectionService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		locality, err := request.RequireString("locality")
		if err != nil {
			return errorResult("Error: locality parameter is required"), nil
		}
		propertyType, err := request.RequireString("property_type")
		if err != nil {
			return errorResult("Error: property_type parameter is required"), nil
		}
		priceAtHandover, err := request.RequireFloat("price_at_handover")
		if err != nil {
			return errorResult("Error: price_at_handover parameter is required"), nil
		}
		handoverYear, err := request.RequireInt("handover_year")
		if err != nil {
			return errorResult("Error: handover_year parameter is required"), nil
		}
		yearsAfter, err := request.RequireInt("years_after")
		if err != nil {
			return errorResult("Error: years_after parameter is required"), nil
		}

		price, err := service.PriceAfterHandover(ctx, locality, propertyType, priceAtHandover, handoverYear, yearsAfter)
		if err != nil {
			logger.Warn().Err(err).Str("locality", locality).Msg("Resale price failed")
			return errorResult(fmt.Sprintf("Resale price error: %v", err)), nil
		}

		return textResult(fmt.Sprintf("## Resale Price\n\n**Price at handover:** %s\n**Years after handover:** %d\n**Projected price:** %s\n",
			formatMoney(priceAtHandover), yearsAfter, formatMoney(price))), nil
	}
}

// handleListCurves implements the list_curves tool
func handleListCurves(curves interfaces.CurveService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := strings.ToLower(strings.TrimSpace(request.GetString("locality", "")))

		var matched []models.ProjectionCurve
		for _, curve := range curves.List(ctx) {
			if filter == "" || strings.Contains(strings.ToLower(curve.Locality), filter) {
				matched = append(matched, curve)
			}
		}

		logger.Debug().Int("curves", len(matched)).Str("filter", filter).Msg("Listed curves")
		return textResult(formatCurves(matched)), nil
	}
}
