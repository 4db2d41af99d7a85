package competitor_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

func bike(name string) *market.BikeType {
	return &market.BikeType{ID: 1, SessionID: "s", Name: name, SkilledHours: 4, UnskilledHours: 6}
}

func newCompetitor(t *testing.T, strategy competitor.Strategy, resources int64, presence, aggression, efficiency float64) *competitor.Competitor {
	t.Helper()
	c, err := competitor.NewCompetitor("s", "Rival", strategy, decimal.NewFromInt(resources), presence, aggression, efficiency)
	require.NoError(t, err)
	c.ID = 7
	return c
}

func TestNewCompetitor_Validation(t *testing.T) {
	tests := []struct {
		name       string
		strategy   competitor.Strategy
		presence   float64
		aggression float64
		efficiency float64
		field      string
	}{
		{"unknown strategy", "hoarder", 10, 0.5, 0.5, "strategy"},
		{"presence above 100", competitor.StrategyBalanced, 101, 0.5, 0.5, "market_presence"},
		{"aggressiveness above 1", competitor.StrategyBalanced, 10, 1.5, 0.5, "aggressiveness"},
		{"zero efficiency", competitor.StrategyBalanced, 10, 0.5, 0, "efficiency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := competitor.NewCompetitor("s", "Rival", tt.strategy, decimal.NewFromInt(1000), tt.presence, tt.aggression, tt.efficiency)

			var invalid *competitor.ErrInvalidCompetitor
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestProductionCapacity(t *testing.T) {
	// floor(40000/1000)=40, * 0.6 * (0.5 + 0.12) = 14.88
	c := newCompetitor(t, competitor.StrategyCheapOnly, 40000, 12, 0.8, 0.6)

	assert.Equal(t, 14, c.ProductionCapacity())
}

func TestProductionCapacity_NoResources(t *testing.T) {
	c := newCompetitor(t, competitor.StrategyBalanced, 0, 20, 0.5, 0.7)

	assert.Equal(t, 0, c.ProductionCapacity())
}

func TestProductionCost_PerStrategy(t *testing.T) {
	// material 200 + 4h*15 + 6h*10 = 320, / 0.8 = 400
	tests := []struct {
		strategy competitor.Strategy
		want     string
	}{
		{competitor.StrategyCheapOnly, "320"},
		{competitor.StrategyBalanced, "400"},
		{competitor.StrategyEBikeSpecialist, "400"},
		{competitor.StrategyPremiumFocus, "480"},
		{competitor.Strategy("unknown"), "400"},
	}
	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			cost := tt.strategy.ProductionCost(bike("City Bike"), 0.8)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(cost), "got %s", cost)
		})
	}
}

func TestProductionCost_RoundsToCents(t *testing.T) {
	cost := competitor.StrategyBalanced.ProductionCost(bike("City Bike"), 0.7)

	assert.Equal(t, "457.14", cost.StringFixed(2))
	assert.Equal(t, int32(-2), cost.Exponent())
}

func TestBikeTypePreference(t *testing.T) {
	assert.Equal(t, 0.8, competitor.StrategyCheapOnly.BikeTypePreference(bike("Basic City")))
	assert.Equal(t, 0.9, competitor.StrategyPremiumFocus.BikeTypePreference(bike("Racing Pro")))
	assert.Equal(t, 0.9, competitor.StrategyEBikeSpecialist.BikeTypePreference(bike("E-Trekking")))
	assert.Equal(t, 0.1, competitor.StrategyEBikeSpecialist.BikeTypePreference(bike("Mountain")))
	assert.Equal(t, 0.6, competitor.StrategyBalanced.BikeTypePreference(bike("Anything")))
}

func TestSegmentPreference_CheapOnly(t *testing.T) {
	s := competitor.StrategyCheapOnly

	assert.Equal(t, 0.8, s.SegmentPreference(market.SegmentCheap))
	assert.Equal(t, 0.2, s.SegmentPreference(market.SegmentStandard))
	assert.Equal(t, 0.0, s.SegmentPreference(market.SegmentPremium))
}

func TestOfferQuality_SpecialtyDiscount(t *testing.T) {
	premium := newCompetitor(t, competitor.StrategyPremiumFocus, 75000, 18, 0.4, 0.9)
	balanced := newCompetitor(t, competitor.StrategyBalanced, 55000, 20, 0.5, 0.7)

	assert.InDelta(t, 0.9*1.2, premium.OfferQuality(market.SegmentPremium), 1e-9)
	assert.InDelta(t, 0.7*1.0*0.9, balanced.OfferQuality(market.SegmentPremium), 1e-9)
	assert.InDelta(t, 0.7*1.0*0.95, balanced.OfferQuality(market.SegmentCheap), 1e-9)
}

func TestParseStrategy(t *testing.T) {
	s, err := competitor.ParseStrategy("premium_focus")
	require.NoError(t, err)
	assert.Equal(t, competitor.StrategyPremiumFocus, s)

	_, err = competitor.ParseStrategy("luxury")
	assert.ErrorIs(t, err, competitor.ErrInvalidStrategy)
}

func TestRecordSaleAndWriteDown(t *testing.T) {
	c := newCompetitor(t, competitor.StrategyBalanced, 10000, 20, 0.5, 0.7)

	c.RecordProduction(12)
	c.RecordSale(3, decimal.NewFromInt(1500))
	c.WriteDown(decimal.NewFromInt(250))

	assert.Equal(t, 12, c.TotalBikesProduced)
	assert.Equal(t, 3, c.TotalBikesSold)
	assert.True(t, decimal.NewFromInt(1500).Equal(c.TotalRevenue))
	assert.True(t, decimal.NewFromInt(9750).Equal(c.FinancialResources))
}

func TestDefaultRoster(t *testing.T) {
	roster := competitor.DefaultRoster("s")

	require.Len(t, roster, 4)
	strategies := map[competitor.Strategy]bool{}
	for _, c := range roster {
		assert.Equal(t, "s", c.SessionID)
		strategies[c.Strategy] = true
	}
	assert.Len(t, strategies, 4)
}

func TestProductionLot_AgingAndRemoval(t *testing.T) {
	lot := competitor.NewProductionLot(7, 1, market.SegmentCheap, shared.MustPeriod(1, 2024), 10, decimal.NewFromInt(300))
	lot.RecordYield(8)

	lot.UpdateAge(shared.MustPeriod(8, 2024))
	assert.Equal(t, 7, lot.MonthsInInventory)
	assert.Equal(t, 0.85, lot.AgePenalty())

	require.NoError(t, lot.RemoveFromInventory(5))
	assert.Equal(t, 3, lot.QuantityInInventory)

	err := lot.RemoveFromInventory(4)
	assert.ErrorIs(t, err, shared.ErrInvariantViolation)
	assert.Equal(t, 3, lot.QuantityInInventory, "failed removal must not clamp")
}
