package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createProjectInvestmentTool returns the project_investment tool definition
func createProjectInvestmentTool() mcp.Tool {
	return mcp.NewTool("project_investment",
		mcp.WithDescription("Project appreciation, rental income, ROI and break-even year for a property investment"),
		mcp.WithString("locality",
			mcp.Required(),
			mcp.Description("Locality or community name, e.g. Dubai Marina"),
		),
		mcp.WithString("property_type",
			mcp.Required(),
			mcp.Description("Property type, e.g. Apartment or Villa"),
		),
		mcp.WithNumber("principal",
			mcp.Required(),
			mcp.Description("Purchase price"),
		),
		mcp.WithNumber("horizon_years",
			mcp.Description("Projection horizon in years (default: length of the locality curve)"),
		),
		mcp.WithString("financing",
			mcp.Description("Financing mode (default: self_paid)"),
			mcp.Enum("self_paid", "mortgage"),
		),
		mcp.WithNumber("down_payment_ratio",
			mcp.Description("Mortgage down payment as a fraction of price (default: 0.4)"),
		),
		mcp.WithNumber("interest_rate",
			mcp.Description("Mortgage annual interest rate in percent (default: 3.99)"),
		),
		mcp.WithString("usage",
			mcp.Description("Intended usage (default: rental)"),
			mcp.Enum("rental", "self_use"),
		),
		mcp.WithNumber("property_area",
			mcp.Description("Property area, required for per-area curves"),
		),
		mcp.WithNumber("handover_year",
			mcp.Description("Handover year for off-plan properties"),
		),
		mcp.WithNumber("short_term_premium",
			mcp.Description("Override for the short-term rental premium value"),
		),
	)
}

// createHandoverPriceTool returns the handover_price tool definition
func createHandoverPriceTool() mcp.Tool {
	return mcp.NewTool("handover_price",
		mcp.WithDescription("Project an off-plan listing price to its handover year"),
		mcp.WithNumber("listing_price",
			mcp.Required(),
			mcp.Description("Current listing price"),
		),
		mcp.WithNumber("handover_year",
			mcp.Required(),
			mcp.Description("Calendar year of handover"),
		),
		mcp.WithNumber("annual_growth_rate",
			mcp.Description("Annual growth before handover as a fraction; 0 means no growth (default: configured rate)"),
		),
	)
}

// createResalePriceTool returns the resale_price tool definition
func createResalePriceTool() mcp.Tool {
	return mcp.NewTool("resale_price",
		mcp.WithDescription("Project the price of an off-plan property some years after handover"),
		mcp.WithString("locality",
			mcp.Required(),
			mcp.Description("Locality or community name"),
		),
		mcp.WithString("property_type",
			mcp.Required(),
			mcp.Description("Property type"),
		),
		mcp.WithNumber("price_at_handover",
			mcp.Required(),
			mcp.Description("Price at handover"),
		),
		mcp.WithNumber("handover_year",
			mcp.Required(),
			mcp.Description("Calendar year of handover"),
		),
		mcp.WithNumber("years_after",
			mcp.Required(),
			mcp.Description("Years after handover"),
		),
	)
}

// createListCurvesTool returns the list_curves tool definition
func createListCurvesTool() mcp.Tool {
	return mcp.NewTool("list_curves",
		mcp.WithDescription("List the localities and property types with projection curves"),
		mcp.WithString("locality",
			mcp.Description("Only list curves whose locality contains this text"),
		),
	)
}
