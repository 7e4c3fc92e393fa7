package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveKey(t *testing.T) {
	assert.Equal(t, "dubai marina|apartment", CurveKey("  Dubai   Marina ", "APARTMENT"))
	assert.Equal(t, CurveKey("JVC", "Villa"), CurveKey("jvc", " villa"))
}

func TestShortTermPremium_Apply(t *testing.T) {
	assert.InDelta(t, 32.0, ShortTermPremium{Mode: PremiumMultiplicative, Value: 1.6}.Apply(20), 1e-9)
	assert.InDelta(t, 12.99, ShortTermPremium{Mode: PremiumAdditive, Value: 3.99}.Apply(9), 1e-9)
}

func TestProjectionCurve_EffectivePremium(t *testing.T) {
	perArea := ProjectionCurve{Basis: YieldBasisPerArea}
	direct := ProjectionCurve{Basis: YieldBasisDirectPercentage}

	assert.Equal(t, ShortTermPremium{Mode: PremiumMultiplicative, Value: DefaultPerAreaPremium}, perArea.EffectivePremium(nil))
	assert.Equal(t, ShortTermPremium{Mode: PremiumAdditive, Value: DefaultDirectPremium}, direct.EffectivePremium(nil))

	override := 5.0
	assert.Equal(t, ShortTermPremium{Mode: PremiumAdditive, Value: 5}, direct.EffectivePremium(&override))

	custom := ProjectionCurve{Basis: YieldBasisPerArea, Premium: &ShortTermPremium{Mode: PremiumAdditive, Value: 2}}
	assert.Equal(t, ShortTermPremium{Mode: PremiumAdditive, Value: 2}, custom.EffectivePremium(nil))
}

func TestProjectionCurve_Validate(t *testing.T) {
	valid := func() ProjectionCurve {
		return ProjectionCurve{
			Locality:     "Marina",
			PropertyType: "Apartment",
			Basis:        YieldBasisDirectPercentage,
			Points: []ProjectionPoint{
				{AppreciationPercent: 5, Yield: 7},
				{AppreciationPercent: 9, Yield: 7.5},
			},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *ProjectionCurve)
	}{
		{name: "missing locality", mutate: func(c *ProjectionCurve) { c.Locality = " " }},
		{name: "unknown basis", mutate: func(c *ProjectionCurve) { c.Basis = "monthly" }},
		{name: "no points", mutate: func(c *ProjectionCurve) { c.Points = nil }},
		{name: "negative yield", mutate: func(c *ProjectionCurve) { c.Points[1].Yield = -1 }},
		{name: "decreasing appreciation", mutate: func(c *ProjectionCurve) { c.Points[1].AppreciationPercent = 1 }},
		{name: "unknown premium mode", mutate: func(c *ProjectionCurve) { c.Premium = &ShortTermPremium{Mode: "exotic", Value: 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestFinancing(t *testing.T) {
	mortgage := Mortgage()
	assert.True(t, mortgage.IsMortgage())
	assert.InDelta(t, 200_000, mortgage.CashInvested(500_000), 1e-6)
	assert.InDelta(t, 300_000, mortgage.LoanAmount(500_000), 1e-6)
	assert.InDelta(t, 11_970, mortgage.AnnualInterest(500_000), 1e-6)

	cash := SelfPaid()
	assert.Equal(t, 500_000.0, cash.CashInvested(500_000))
	assert.Zero(t, cash.LoanAmount(500_000))
	assert.Zero(t, cash.AnnualInterest(500_000))

	ratio := 0.25
	resolved := FinancingRequest{Mode: FinancingMortgage, DownPaymentRatio: &ratio}.Resolve()
	assert.Equal(t, 0.25, resolved.DownPaymentRatio)
	assert.Equal(t, DefaultMortgageInterestRate, resolved.InterestRate)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.24, Round2(1.2361))
	assert.Equal(t, -3.5, Round2(-3.499))
	assert.Equal(t, 1335700.0, Round2(1335700.004))
}
