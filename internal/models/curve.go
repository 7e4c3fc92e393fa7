package models

import (
	"fmt"
	"strings"
	"time"
)

// YieldBasis tells how a curve expresses rental return
type YieldBasis string

const (
	// YieldBasisPerArea curves carry a monthly rent rate per unit of area
	YieldBasisPerArea YieldBasis = "per_area"
	// YieldBasisDirectPercentage curves carry an annual ROI percentage
	YieldBasisDirectPercentage YieldBasis = "direct_percentage"
)

// IsValid reports whether the basis is one of the known values
func (b YieldBasis) IsValid() bool {
	return b == YieldBasisPerArea || b == YieldBasisDirectPercentage
}

// RequiresArea reports whether income on this basis needs a property area
func (b YieldBasis) RequiresArea() bool {
	return b == YieldBasisPerArea
}

// PremiumMode is how a short-term-let premium is applied to a yield figure
type PremiumMode string

const (
	PremiumMultiplicative PremiumMode = "multiplicative"
	PremiumAdditive       PremiumMode = "additive"
)

const (
	// DefaultPerAreaPremium is the short-term multiplier for per-area curves
	DefaultPerAreaPremium = 1.6
	// DefaultDirectPremium is the short-term ROI bump (percentage points) for direct curves
	DefaultDirectPremium = 3.99
)

// ShortTermPremium converts a long-term yield into its short-term-let equivalent
type ShortTermPremium struct {
	Mode  PremiumMode `json:"mode" toml:"mode" yaml:"mode"`
	Value float64     `json:"value" toml:"value" yaml:"value"`
}

// DefaultPremium returns the premium strategy used by a basis when the curve does not carry one
func DefaultPremium(basis YieldBasis) ShortTermPremium {
	if basis == YieldBasisPerArea {
		return ShortTermPremium{Mode: PremiumMultiplicative, Value: DefaultPerAreaPremium}
	}
	return ShortTermPremium{Mode: PremiumAdditive, Value: DefaultDirectPremium}
}

// Apply returns the short-term yield for a long-term yield
func (p ShortTermPremium) Apply(yield float64) float64 {
	if p.Mode == PremiumAdditive {
		return yield + p.Value
	}
	return yield * p.Value
}

// ProjectionPoint is one yearly entry of a curve.
// AppreciationPercent is cumulative from now through the end of the year.
type ProjectionPoint struct {
	AppreciationPercent float64 `json:"appreciation_percent" toml:"appreciation_percent" yaml:"appreciation_percent"`
	Yield               float64 `json:"yield" toml:"yield" yaml:"yield"`
}

// ProjectionCurve is read-only reference data for a (locality, property type) pair.
// Index 0 is year 1 from now.
type ProjectionCurve struct {
	Key          string            `json:"key" toml:"-" yaml:"-"`
	Locality     string            `json:"locality" toml:"locality" yaml:"locality"`
	PropertyType string            `json:"property_type" toml:"property_type" yaml:"property_type"`
	Basis        YieldBasis        `json:"basis" toml:"basis" yaml:"basis"`
	Premium      *ShortTermPremium `json:"premium,omitempty" toml:"premium,omitempty" yaml:"premium,omitempty"`
	Points       []ProjectionPoint `json:"points" toml:"points" yaml:"points"`
	UpdatedAt    time.Time         `json:"updated_at" toml:"-" yaml:"-"`
}

// CurveKey builds the normalized storage key for a (locality, property type) pair
func CurveKey(locality, propertyType string) string {
	return normalizeKeyPart(locality) + "|" + normalizeKeyPart(propertyType)
}

func normalizeKeyPart(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Len returns the native number of yearly points
func (c ProjectionCurve) Len() int {
	return len(c.Points)
}

// EffectivePremium returns the curve's premium strategy with an optional value override
func (c ProjectionCurve) EffectivePremium(override *float64) ShortTermPremium {
	premium := DefaultPremium(c.Basis)
	if c.Premium != nil {
		premium = *c.Premium
	}
	if override != nil {
		premium.Value = *override
	}
	return premium
}

// Validate checks the invariants a curve must satisfy before it is stored
func (c ProjectionCurve) Validate() error {
	if strings.TrimSpace(c.Locality) == "" || strings.TrimSpace(c.PropertyType) == "" {
		return fmt.Errorf("curve requires locality and property_type")
	}
	if !c.Basis.IsValid() {
		return fmt.Errorf("curve %s: unknown yield basis %q", CurveKey(c.Locality, c.PropertyType), c.Basis)
	}
	if len(c.Points) == 0 {
		return fmt.Errorf("curve %s: no points", CurveKey(c.Locality, c.PropertyType))
	}
	if c.Premium != nil && c.Premium.Mode != PremiumMultiplicative && c.Premium.Mode != PremiumAdditive {
		return fmt.Errorf("curve %s: unknown premium mode %q", CurveKey(c.Locality, c.PropertyType), c.Premium.Mode)
	}
	for i, p := range c.Points {
		if p.Yield < 0 {
			return fmt.Errorf("curve %s: negative yield at year %d", CurveKey(c.Locality, c.PropertyType), i+1)
		}
		if i > 0 && p.AppreciationPercent < c.Points[i-1].AppreciationPercent {
			return fmt.Errorf("curve %s: appreciation decreases at year %d", CurveKey(c.Locality, c.PropertyType), i+1)
		}
	}
	return nil
}
