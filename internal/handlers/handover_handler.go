package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
)

// HandoverPriceRequest asks for the projected price of an off-plan listing at handover
type HandoverPriceRequest struct {
	ListingPrice     float64  `json:"listing_price"`
	HandoverYear     int      `json:"handover_year"`
	AnnualGrowthRate *float64 `json:"annual_growth_rate,omitempty"` // nil uses the configured rate
}

// ResaleRequest asks for the resale price some years after handover
type ResaleRequest struct {
	Locality        string  `json:"locality"`
	PropertyType    string  `json:"property_type"`
	PriceAtHandover float64 `json:"price_at_handover"`
	HandoverYear    int     `json:"handover_year"`
	YearsAfter      int     `json:"years_after"`
}

// HandoverHandler serves off-plan price projections
type HandoverHandler struct {
	service interfaces.ProjectionService
	logger  arbor.ILogger
}

func NewHandoverHandler(service interfaces.ProjectionService, logger arbor.ILogger) *HandoverHandler {
	return &HandoverHandler{
		service: service,
		logger:  logger,
	}
}

// PriceHandler projects a listing price to handover
// POST /api/handover/price
func (h *HandoverHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req HandoverPriceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	price, err := h.service.HandoverPrice(req.ListingPrice, req.HandoverYear, req.AnnualGrowthRate)
	if err != nil {
		WriteServiceError(w, h.logger, err, "handover_price")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"listing_price":  req.ListingPrice,
		"handover_year":  req.HandoverYear,
		"handover_price": models.Round2(price),
	})
}

// ResaleHandler projects the price of a property some years after handover
// POST /api/handover/resale
func (h *HandoverHandler) ResaleHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ResaleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	price, err := h.service.PriceAfterHandover(r.Context(), req.Locality, req.PropertyType, req.PriceAtHandover, req.HandoverYear, req.YearsAfter)
	if err != nil {
		WriteServiceError(w, h.logger, err, "handover_resale")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"price_at_handover": req.PriceAtHandover,
		"years_after":       req.YearsAfter,
		"resale_price":      models.Round2(price),
	})
}
