package competitor_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

func agedLot(age, inventory int) *competitor.ProductionLot {
	lot := competitor.NewProductionLot(7, 1, market.SegmentStandard, shared.MustPeriod(1, 2024), inventory, decimal.NewFromInt(250))
	lot.RecordYield(inventory)
	lot.MonthsInInventory = age
	return lot
}

func TestLiquidationPolicy_Decide(t *testing.T) {
	policy := competitor.DefaultLiquidationPolicy()

	tests := []struct {
		name       string
		aggression float64
		age        int
		inventory  int
		want       competitor.LiquidationAction
	}{
		{"aggressive and old", 0.8, 6, 100, competitor.LiquidationActionLiquidate},
		{"aggressive but young", 0.8, 5, 100, competitor.LiquidationActionNone},
		{"conservative holds", 0.3, 9, 100, competitor.LiquidationActionHold},
		{"middle ground does nothing", 0.5, 9, 100, competitor.LiquidationActionNone},
		{"threshold is exclusive", 0.6, 9, 100, competitor.LiquidationActionNone},
		{"empty lot", 0.9, 9, 0, competitor.LiquidationActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCompetitor(t, competitor.StrategyBalanced, 10000, 10, tt.aggression, 0.7)

			assert.Equal(t, tt.want, policy.Decide(c, agedLot(tt.age, tt.inventory)))
		})
	}
}

func TestLiquidationPolicy_QuantityRange(t *testing.T) {
	policy := competitor.DefaultLiquidationPolicy()
	random := shared.NewSeededRandom(42)

	for i := 0; i < 200; i++ {
		qty := policy.Quantity(100, random.Uniform(policy.MinRate, policy.MaxRate))
		assert.GreaterOrEqual(t, qty, 60)
		assert.LessOrEqual(t, qty, 90)
	}
}

func TestLiquidationPolicy_WriteDown(t *testing.T) {
	policy := competitor.DefaultLiquidationPolicy()

	// 250 * 75 * 0.3
	assert.Equal(t, "5625.00", policy.WriteDown(decimal.NewFromInt(250), 75).StringFixed(2))
}
