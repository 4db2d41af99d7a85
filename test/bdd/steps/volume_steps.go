package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
)

type volumeContext struct {
	market        *market.Market
	bikeType      *market.BikeType
	segment       market.PriceSegment
	maximumVolume int
}

func (ctx *volumeContext) reset() {
	ctx.market = nil
	ctx.bikeType = nil
	ctx.segment = ""
	ctx.maximumVolume = 0
}

func (ctx *volumeContext) aMarketWithMonthlyCapacity(capacity int) error {
	m, err := market.NewMarket("bdd", "Test Market", "test", capacity, 1.0, decimal.Zero, decimal.Zero)
	if err != nil {
		return err
	}
	ctx.market = m
	return nil
}

func (ctx *volumeContext) aBikeTypeNamed(name string) error {
	b, err := market.NewBikeType("bdd", name, 3, 2)
	if err != nil {
		return err
	}
	ctx.bikeType = b
	return nil
}

func (ctx *volumeContext) iComputeTheMaximumVolumeOfTheSegment(segment string) error {
	s, err := market.ParsePriceSegment(segment)
	if err != nil {
		return err
	}
	ctx.segment = s
	ctx.maximumVolume = market.MaximumVolume(ctx.market, ctx.bikeType, s)
	return nil
}

func (ctx *volumeContext) theSegmentCapacityShouldBe(expected int) error {
	got := int(math.Floor(float64(ctx.market.MonthlyCapacity)*ctx.segment.CapacityShare() + 1e-9))
	if got != expected {
		return fmt.Errorf("expected segment capacity %d, got %d", expected, got)
	}
	return nil
}

func (ctx *volumeContext) thePopularityFactorShouldBe(expected float64) error {
	if got := ctx.bikeType.Popularity(); math.Abs(got-expected) > 1e-9 {
		return fmt.Errorf("expected popularity %.2f, got %.2f", expected, got)
	}
	return nil
}

func (ctx *volumeContext) theMaximumVolumeShouldBe(expected int) error {
	if ctx.maximumVolume != expected {
		return fmt.Errorf("expected maximum volume %d, got %d", expected, ctx.maximumVolume)
	}
	return nil
}

// InitializeVolumeScenario registers the volume ceiling steps
func InitializeVolumeScenario(sc *godog.ScenarioContext) {
	ctx := &volumeContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a market with monthly capacity (\d+)$`, ctx.aMarketWithMonthlyCapacity)
	sc.Step(`^a bike type named "([^"]*)"$`, ctx.aBikeTypeNamed)
	sc.Step(`^I compute the maximum volume of the "([^"]*)" segment$`, ctx.iComputeTheMaximumVolumeOfTheSegment)
	sc.Step(`^the segment capacity should be (\d+)$`, ctx.theSegmentCapacityShouldBe)
	sc.Step(`^the popularity factor should be ([\d.]+)$`, ctx.thePopularityFactorShouldBe)
	sc.Step(`^the maximum volume should be (\d+)$`, ctx.theMaximumVolumeShouldBe)
}
