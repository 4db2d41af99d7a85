//go:build property
// +build property

package market_test

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

func randomOffers(seed int64, count int) []market.Offer {
	rng := rand.New(rand.NewSource(seed))
	offers := make([]market.Offer, count)
	for i := range offers {
		quantity := rng.Intn(40)
		backing := rng.Intn(40)
		price := decimal.NewFromFloat(float64(rng.Intn(3000))).Round(2)
		quality := 0.5 + rng.Float64()
		offers[i] = market.NewCompetitorOffer(uint(i+1), uint(i+1), quantity, backing, price, quality)
	}
	return offers
}

// Property: sum(allocated) <= maximum volume and allocated <= offer quantity, for both strategies
func TestAllocationBound(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, strategy := range []market.AllocationStrategy{market.StrategyCompetitive, market.StrategyPriceOrder} {
		strategy := strategy
		properties.Property(string(strategy)+" allocation stays within bounds", prop.ForAll(
			func(seed int64, count, demand, maxVolume int) bool {
				comp := newCompetition(demand, maxVolume, 600, 1.0)
				allocator, err := market.NewAllocator(strategy, shared.NewSeededRandom(seed))
				if err != nil {
					return false
				}
				offers := randomOffers(seed, count)
				allocations := allocator.Allocate(market.AllocationRequest{
					Competition: comp, MarketElasticityFactor: 1.0, Offers: offers,
				})
				if len(allocations) != len(offers) {
					return false
				}
				for _, a := range allocations {
					if a.Quantity < 0 || a.Quantity > a.Offer.Quantity || a.Quantity > a.Offer.Backing {
						return false
					}
				}
				return market.TotalAllocated(allocations) <= maxVolume
			},
			gen.Int64(),
			gen.IntRange(0, 25),
			gen.IntRange(0, 500),
			gen.IntRange(1, 300),
		))
	}

	properties.TestingRun(t)
}

// Property: walking the ranked allocations, remaining capacity never increases and never goes negative
func TestCapacityMonotonicity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("remaining capacity is non-increasing and non-negative", prop.ForAll(
		func(seed int64, count, demand, maxVolume int) bool {
			comp := newCompetition(demand, maxVolume, 600, 1.0)
			allocations := (&market.CompetitiveAllocator{}).Allocate(market.AllocationRequest{
				Competition: comp, Offers: randomOffers(seed, count),
			})
			remaining := maxVolume
			for _, a := range allocations {
				next := remaining - a.Quantity
				if next > remaining || next < 0 {
					return false
				}
				remaining = next
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 25),
		gen.IntRange(0, 500),
		gen.IntRange(0, 300),
	))

	properties.TestingRun(t)
}

// Property: Q(optimal) == demand and Q is non-increasing above the optimal price
func TestDemandCurveSanity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("demand curve passes through the optimum and falls with price", prop.ForAll(
		func(demand int, optimal int64, elasticity float64, step int64) bool {
			comp := newCompetition(demand, demand*10, optimal, elasticity)
			atOptimum := comp.DemandAtPrice(decimal.NewFromInt(optimal))
			if atOptimum != demand {
				return false
			}
			higher := comp.DemandAtPrice(decimal.NewFromInt(optimal + step))
			muchHigher := comp.DemandAtPrice(decimal.NewFromInt(optimal + 2*step))
			return higher <= atOptimum && muchHigher <= higher && higher >= 0
		},
		gen.IntRange(1, 1000),
		gen.Int64Range(100, 3000),
		gen.Float64Range(0.1, 3.0),
		gen.Int64Range(1, 2000),
	))

	properties.TestingRun(t)
}
