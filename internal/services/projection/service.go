package projection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
)

// Service is the request boundary of the engine: it validates, resolves the curve
// and assembles the projection result.
type Service struct {
	engine             *Engine
	curves             interfaces.CurveProvider
	cache              interfaces.ReportCache
	validate           *validator.Validate
	handoverGrowthRate float64
	logger             arbor.ILogger
}

// ServiceOption configures the Service
type ServiceOption func(*Service)

// WithReportCache enables report caching
func WithReportCache(cache interfaces.ReportCache) ServiceOption {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithHandoverGrowthRate sets the annual off-plan growth rate used for handover prices
func WithHandoverGrowthRate(rate float64) ServiceOption {
	return func(s *Service) {
		s.handoverGrowthRate = rate
	}
}

// NewService creates a new projection service
func NewService(engine *Engine, curves interfaces.CurveProvider, logger arbor.ILogger, opts ...ServiceOption) *Service {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	s := &Service{
		engine:             engine,
		curves:             curves,
		validate:           validate,
		handoverGrowthRate: DefaultHandoverGrowthRate,
		logger:             logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the underlying calculators
func (s *Service) Engine() *Engine {
	return s.engine
}

// Validate rejects structurally invalid requests
func (s *Service) Validate(req models.ProjectionRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return &ValidationError{Field: field, Reason: "failed " + reason}
	}
	return &ValidationError{Field: "request", Reason: err.Error()}
}

// Project computes the projection result for a request
func (s *Service) Project(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionResult, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	curve := s.curves.Lookup(ctx, req.Locality, req.PropertyType)
	if curve.Basis.RequiresArea() && req.PropertyArea <= 0 {
		return nil, &ValidationError{Field: "property_area", Reason: "required for per-area curves"}
	}

	params := req.Parameters()
	window := s.engine.HandoverWindow(curve, params.HandoverYear)

	horizon := params.HorizonYears
	if horizon == 0 {
		horizon = window.Curve().Len()
	}

	gains := s.engine.CapitalGains(window, horizon, params.Principal)
	cumulative := s.engine.CumulativeROIByType(window, horizon, params)

	result := &models.ProjectionResult{
		Locality:                req.Locality,
		PropertyType:            req.PropertyType,
		Basis:                   window.Basis(),
		HorizonYears:            horizon,
		HandoverYear:            params.HandoverYear,
		FutureValue:             gains.FutureValue,
		CapitalGains:            gains.Gains,
		AverageAnnualROIPercent: s.engine.AverageAnnualROI(window, horizon, params),
		AverageAnnualRent:       s.engine.AverageAnnualRent(window, horizon, params),
		CumulativeROIPercent:    cumulative.ROIPercent,
		CashInvested:            cumulative.CashInvested,
		BreakEvenYear:           s.engine.BreakEvenYear(window, params),
		AppreciationTimeline:    s.engine.AppreciationTimeline(window, horizon),
		ROITimeline:             s.engine.ROITimeline(window, horizon, params),
	}
	if params.HandoverYear > 0 {
		result.HandoverPrice = s.engine.HandoverPrice(params.Principal, params.HandoverYear, s.handoverGrowthRate)
	}

	s.logger.Debug().
		Str("locality", req.Locality).
		Str("property_type", req.PropertyType).
		Int("horizon_years", horizon).
		Int("offset", window.Offset()).
		Msg("Projection computed")

	return result, nil
}

// ProjectReport computes a materialized report, using the report cache when configured
func (s *Service) ProjectReport(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionReport, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	key, err := s.cacheKey(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to build report cache key, bypassing cache")
	}

	if s.cache != nil && key != "" {
		if report, ok := s.cache.Get(ctx, key); ok {
			s.logger.Debug().Str("key", key).Msg("Report cache hit")
			return report, nil
		}
	}

	result, err := s.Project(ctx, req)
	if err != nil {
		return nil, err
	}
	report := result.Report()

	if s.cache != nil && key != "" {
		if err := s.cache.Set(ctx, key, report); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache report")
		}
	}

	return report, nil
}

// cacheKey includes the current year because timelines and handover offsets depend on it,
// and the curve generation so a saved or reloaded curve is never served from a stale report
func (s *Service) cacheKey(req models.ProjectionRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	return "projection:" + strconv.FormatUint(xxhash.Sum64(data), 16) +
		":" + strconv.Itoa(s.engine.CurrentYear()) +
		":" + strconv.FormatUint(s.curves.Generation(), 10), nil
}

func validateHandoverYear(year int) error {
	if year < models.MinHandoverYear || year > models.MaxHandoverYear {
		return &ValidationError{
			Field:  "handover_year",
			Reason: fmt.Sprintf("must be between %d and %d", models.MinHandoverYear, models.MaxHandoverYear),
		}
	}
	return nil
}

// PriceAfterHandover resolves the curve and projects a resale price after handover
func (s *Service) PriceAfterHandover(ctx context.Context, locality, propertyType string, priceAtHandover float64, handoverYear, yearsAfter int) (float64, error) {
	if priceAtHandover <= 0 {
		return 0, &ValidationError{Field: "price_at_handover", Reason: "must be positive"}
	}
	if yearsAfter < 0 {
		return 0, &ValidationError{Field: "years_after", Reason: "must not be negative"}
	}
	if err := validateHandoverYear(handoverYear); err != nil {
		return 0, err
	}
	curve := s.curves.Lookup(ctx, locality, propertyType)
	return s.engine.PriceAfterHandover(curve, priceAtHandover, handoverYear, yearsAfter), nil
}

// HandoverPrice projects an off-plan listing price to handover.
// A nil growth rate uses the configured rate; an explicit zero means no growth.
func (s *Service) HandoverPrice(listingPrice float64, handoverYear int, annualGrowthRate *float64) (float64, error) {
	if listingPrice <= 0 {
		return 0, &ValidationError{Field: "listing_price", Reason: "must be positive"}
	}
	if err := validateHandoverYear(handoverYear); err != nil {
		return 0, err
	}

	rate := s.handoverGrowthRate
	if annualGrowthRate != nil {
		if *annualGrowthRate < 0 {
			return 0, &ValidationError{Field: "annual_growth_rate", Reason: "must not be negative"}
		}
		rate = *annualGrowthRate
	}
	return s.engine.HandoverPrice(listingPrice, handoverYear, rate), nil
}
