package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

type allocationContext struct {
	competition *market.Competition
	offers      []market.Offer
	names       map[uint]string
	allocations []market.Allocation
}

func (ctx *allocationContext) reset() {
	ctx.competition = nil
	ctx.offers = nil
	ctx.names = make(map[uint]string)
	ctx.allocations = nil
}

func (ctx *allocationContext) aSegmentWithDemandAndMaximumVolume(demand, maxVolume int) error {
	ctx.competition = market.NewCompetition(market.Key{
		SessionID: "bdd",
		Segment:   market.SegmentStandard,
		Period:    shared.MustPeriod(3, 2024),
	})
	ctx.competition.ApplyVolume(market.VolumeEstimate{
		EstimatedDemand: demand,
		MaximumVolume:   maxVolume,
		Elasticity:      1.0,
		OptimalPrice:    decimal.NewFromInt(600),
	})
	return nil
}

func (ctx *allocationContext) aCompetitorOffer(name string, quantity int, price int64, quality float64) error {
	lotID := uint(len(ctx.offers) + 1)
	ctx.names[lotID] = name
	ctx.offers = append(ctx.offers, market.NewCompetitorOffer(lotID, lotID, quantity, quantity, decimal.NewFromInt(price), quality))
	return nil
}

func (ctx *allocationContext) theSegmentIsAllocatedCompetitively() error {
	ctx.allocations = (&market.CompetitiveAllocator{}).Allocate(market.AllocationRequest{
		Competition:            ctx.competition,
		MarketElasticityFactor: 1.0,
		Offers:                 ctx.offers,
	})
	return nil
}

func (ctx *allocationContext) offerShouldRankFirst(name string) error {
	if len(ctx.allocations) == 0 {
		return fmt.Errorf("no allocations")
	}
	if got := ctx.names[ctx.allocations[0].Offer.LotID]; got != name {
		return fmt.Errorf("expected offer %q first, got %q", name, got)
	}
	return nil
}

func (ctx *allocationContext) offerShouldBeAllocatedUnits(name string, expected int) error {
	for _, a := range ctx.allocations {
		if ctx.names[a.Offer.LotID] == name {
			if a.Quantity != expected {
				return fmt.Errorf("offer %q: expected %d units, got %d", name, expected, a.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("offer %q not allocated", name)
}

func (ctx *allocationContext) noMoreThanUnitsShouldBeAllocatedInTotal(limit int) error {
	if total := market.TotalAllocated(ctx.allocations); total > limit {
		return fmt.Errorf("allocated %d units, ceiling is %d", total, limit)
	}
	return nil
}

// InitializeAllocationScenario registers the allocation steps
func InitializeAllocationScenario(sc *godog.ScenarioContext) {
	ctx := &allocationContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a segment with estimated demand (\d+) and maximum volume (\d+)$`, ctx.aSegmentWithDemandAndMaximumVolume)
	sc.Step(`^a competitor offer "([^"]*)" of (\d+) units at price (\d+) with quality ([\d.]+)$`, ctx.aCompetitorOffer)
	sc.Step(`^the segment is allocated competitively$`, ctx.theSegmentIsAllocatedCompetitively)
	sc.Step(`^offer "([^"]*)" should rank first$`, ctx.offerShouldRankFirst)
	sc.Step(`^offer "([^"]*)" should be allocated (\d+) units$`, ctx.offerShouldBeAllocatedUnits)
	sc.Step(`^no more than (\d+) units should be allocated in total$`, ctx.noMoreThanUnitsShouldBeAllocatedInTotal)
}
