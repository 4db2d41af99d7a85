package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/inventory"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

type agingContext struct {
	current shared.Period
	bike    *inventory.ProducedBike
}

func (ctx *agingContext) reset() {
	ctx.current = shared.MustPeriod(6, 2024)
	ctx.bike = nil
}

func (ctx *agingContext) aUnitProducedMonthsAgo(age int) error {
	ctx.bike = inventory.NewProducedBike("bdd", 1, market.SegmentStandard, ctx.current.Minus(age), decimal.NewFromInt(500))
	return nil
}

func (ctx *agingContext) itsAgeIsUpdated() error {
	ctx.bike.UpdateAge(ctx.current)
	return nil
}

func (ctx *agingContext) thePricePenaltyFactorShouldBe(expected float64) error {
	if got := ctx.bike.AgePenalty(); math.Abs(got-expected) > 1e-9 {
		return fmt.Errorf("age %d: expected penalty %.2f, got %.2f", ctx.bike.MonthsInInventory, expected, got)
	}
	return nil
}

// InitializeAgingScenario registers the inventory aging steps
func InitializeAgingScenario(sc *godog.ScenarioContext) {
	ctx := &agingContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a unit produced (\d+) months ago$`, ctx.aUnitProducedMonthsAgo)
	sc.Step(`^its age is updated$`, ctx.itsAgeIsUpdated)
	sc.Step(`^the price penalty factor should be ([\d.]+)$`, ctx.thePricePenaltyFactorShouldBe)
}
