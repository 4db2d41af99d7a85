package market_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
)

func newMarket(t *testing.T, capacity int, elasticity float64) *market.Market {
	t.Helper()
	m, err := market.NewMarket("session-1", "Berlin", "Berlin", capacity, elasticity,
		decimal.NewFromInt(20), decimal.NewFromInt(50))
	require.NoError(t, err)
	return m
}

func bike(name string) *market.BikeType {
	return &market.BikeType{ID: 1, SessionID: "session-1", Name: name, SkilledHours: 4, UnskilledHours: 6}
}

func floatPtr(v float64) *float64 { return &v }

func TestMaximumVolume_CheapCityBike(t *testing.T) {
	m := newMarket(t, 300, 1.0)

	assert.Equal(t, 72, market.MaximumVolume(m, bike("City Bike"), market.SegmentCheap))
	assert.Equal(t, 12, market.MaximumVolume(m, bike("City Bike"), market.SegmentPremium))
}

func TestMaximumVolume_FloorsAtOne(t *testing.T) {
	m := newMarket(t, 5, 1.0)

	assert.Equal(t, 1, market.MaximumVolume(m, bike("Racing Bike"), market.SegmentPremium))
}

func TestBaseDemand_FallsBackToDefaultPercentage(t *testing.T) {
	// Arrange: 200 * 0.3 = 60, cheap share 0.5 = 30, January 0.7 = 21
	m := newMarket(t, 200, 1.0)

	// Act
	demand := market.BaseDemand(market.DemandInputs{
		Market:   m,
		BikeType: bike("City Bike"),
		Segment:  market.SegmentCheap,
		Month:    1,
		Effects:  market.NeutralBusinessEffects(),
		Jitter:   1.0,
	})

	// Assert
	assert.Equal(t, 21, demand)
}

func TestBaseDemand_UsesConfiguredPercentageAndSeason(t *testing.T) {
	// 400 * 0.5 = 200, standard 0.35 = 70, June mountain 1.4 = 98, jitter 0.8 = 78
	m := newMarket(t, 400, 1.0)

	demand := market.BaseDemand(market.DemandInputs{
		Market:           m,
		BikeType:         bike("Mountain Bike"),
		Segment:          market.SegmentStandard,
		Month:            6,
		DemandPercentage: floatPtr(0.5),
		Effects:          market.NeutralBusinessEffects(),
		Jitter:           0.8,
	})

	assert.Equal(t, 78, demand)
}

func TestBaseDemand_NeverBelowOne(t *testing.T) {
	m := newMarket(t, 0, 1.0)

	demand := market.BaseDemand(market.DemandInputs{
		Market:   m,
		BikeType: bike("City Bike"),
		Segment:  market.SegmentPremium,
		Month:    12,
		Effects:  market.NeutralBusinessEffects(),
		Jitter:   0.8,
	})

	assert.Equal(t, 1, demand)
}

func TestBusinessEffects_DemandMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		effects  market.BusinessEffects
		segment  market.PriceSegment
		expected float64
	}{
		{"neutral", market.NeutralBusinessEffects(), market.SegmentCheap, 1.0},
		{"premium amplifies marketing", market.BusinessEffects{DemandBoost: 10, DemandModifier: 1.0}, market.SegmentPremium, 1.13},
		{"cheap dampens marketing", market.BusinessEffects{DemandBoost: 10, DemandModifier: 1.0}, market.SegmentCheap, 1.07},
		{"standard unchanged", market.BusinessEffects{DemandBoost: 0, DemandModifier: 1.2}, market.SegmentStandard, 1.2},
		{"clamped high", market.BusinessEffects{DemandBoost: 200, DemandModifier: 1.0}, market.SegmentPremium, 2.0},
		{"clamped low", market.BusinessEffects{DemandBoost: 0, DemandModifier: 0.2}, market.SegmentCheap, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.effects.DemandMultiplier(tt.segment), 1e-9)
		})
	}
}

func TestDemandElasticity(t *testing.T) {
	m := newMarket(t, 100, 1.0)

	assert.InDelta(t, 1.8, market.DemandElasticity(m, bike("City Bike"), market.SegmentCheap, nil), 1e-9)
	assert.InDelta(t, 0.42, market.DemandElasticity(m, bike("E-Trekking"), market.SegmentPremium, nil), 1e-9)
	assert.InDelta(t, 3.0, market.DemandElasticity(m, bike("City Bike"), market.SegmentCheap, floatPtr(250)), 1e-9)

	inelastic := newMarket(t, 100, 0)
	assert.InDelta(t, 0.1, market.DemandElasticity(inelastic, bike("Racing Bike"), market.SegmentStandard, nil), 1e-9)
}

func TestOptimalPrice(t *testing.T) {
	configured := decimal.NewFromInt(999)

	assert.True(t, decimal.NewFromInt(2160).Equal(market.OptimalPrice(bike("E-Mountain"), market.SegmentPremium, nil)))
	assert.True(t, decimal.NewFromInt(780).Equal(market.OptimalPrice(bike("Mountain Bike"), market.SegmentStandard, nil)))
	assert.True(t, decimal.NewFromInt(300).Equal(market.OptimalPrice(bike("City Bike"), market.SegmentCheap, nil)))
	assert.True(t, configured.Equal(market.OptimalPrice(bike("City Bike"), market.SegmentCheap, &configured)))
}

func TestSimplifiedDemand_UsesLocationFactor(t *testing.T) {
	// 200 * green city 1.5 * standard 0.4 * September e-bike 1.2 = 144
	m := newMarket(t, 200, 1.0)
	m.Factors.GreenCity = 1.5

	assert.Equal(t, 144, market.SimplifiedDemand(m, bike("E-City"), market.SegmentStandard, 9))
}

func TestSeasonalFactors(t *testing.T) {
	assert.Equal(t, 1.4, market.VolumeSeasonalFactor(bike("Racing Bike"), 5))
	assert.Equal(t, 1.2, market.VolumeSeasonalFactor(bike("City Bike"), 7))
	assert.Equal(t, 1.1, market.VolumeSeasonalFactor(bike("Kids Bike"), 4))
	assert.Equal(t, 1.3, market.VolumeSeasonalFactor(bike("E-Bike"), 9))
	assert.Equal(t, 1.0, market.VolumeSeasonalFactor(bike("City Bike"), 3))
	assert.Equal(t, 0.7, market.VolumeSeasonalFactor(bike("E-Bike"), 12))

	assert.Equal(t, 1.3, market.SimplifiedSeasonalFactor(bike("MTB Pro"), 6))
	assert.Equal(t, 0.8, market.SimplifiedSeasonalFactor(bike("Rennrad"), 1))
	assert.Equal(t, 0.9, market.SimplifiedSeasonalFactor(bike("Elektro City"), 2))
	assert.Equal(t, 1.0, market.SimplifiedSeasonalFactor(bike("City Bike"), 6))
}

func TestParsePriceSegment(t *testing.T) {
	seg, err := market.ParsePriceSegment("premium")
	require.NoError(t, err)
	assert.Equal(t, market.SegmentPremium, seg)

	_, err = market.ParsePriceSegment("luxury")
	assert.ErrorIs(t, err, market.ErrInvalidSegment)
}

func TestNewMarket_RejectsNegativeCapacity(t *testing.T) {
	_, err := market.NewMarket("s", "Paris", "Paris", -1, 1.0, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, market.ErrInvalidMarket)
}
