package market

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// AllocationStrategy names an allocation algorithm
type AllocationStrategy string

const (
	// StrategyCompetitive splits estimated demand by competitiveness share under the volume ceiling
	StrategyCompetitive AllocationStrategy = "competitive"
	// StrategyPriceOrder fills elasticity-adjusted demand in ascending price/quality order
	StrategyPriceOrder AllocationStrategy = "price_order"
)

// ParseAllocationStrategy converts a configured name into a strategy
func ParseAllocationStrategy(value string) (AllocationStrategy, error) {
	switch AllocationStrategy(value) {
	case StrategyCompetitive, StrategyPriceOrder:
		return AllocationStrategy(value), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAllocationStrategy, value)
}

// AllocationRequest is one key's consistent snapshot: the competition record and every offer
type AllocationRequest struct {
	Competition            *Competition
	MarketElasticityFactor float64
	Offers                 []Offer
}

// Allocator distributes bounded demand across offers.
// It returns one allocation per offer and never mutates inventory.
type Allocator interface {
	Strategy() AllocationStrategy
	Allocate(req AllocationRequest) []Allocation
}

// NewAllocator builds the allocator for a strategy
func NewAllocator(strategy AllocationStrategy, random shared.RandomSource) (Allocator, error) {
	switch strategy {
	case StrategyCompetitive:
		return &CompetitiveAllocator{}, nil
	case StrategyPriceOrder:
		return NewPriceOrderAllocator(random), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidAllocationStrategy, strategy)
}

// CompetitiveAllocator ranks offers by competitiveness and gives each a proportional
// share of estimated demand, bounded by its quantity and the remaining volume ceiling.
type CompetitiveAllocator struct{}

func (a *CompetitiveAllocator) Strategy() AllocationStrategy {
	return StrategyCompetitive
}

func (a *CompetitiveAllocator) Allocate(req AllocationRequest) []Allocation {
	if len(req.Offers) == 0 {
		return nil
	}
	comp := req.Competition

	ranked := make([]Offer, len(req.Offers))
	copy(ranked, req.Offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Competitiveness() > ranked[j].Competitiveness()
	})

	// Shares are taken against the whole pool, not the unconsumed remainder.
	totalScore := 0.0
	for _, o := range ranked {
		totalScore += o.Competitiveness()
	}

	remaining := comp.MaximumVolume
	allocations := make([]Allocation, 0, len(ranked))
	for _, offer := range ranked {
		allocation := Allocation{Offer: offer, DemandAtPrice: comp.DemandAtPrice(offer.UnitPrice)}
		if remaining <= 0 {
			allocations = append(allocations, allocation)
			continue
		}

		share := 1.0 / float64(len(ranked))
		if totalScore > 0 {
			share = offer.Competitiveness() / totalScore
		}

		base := floorInt(float64(comp.EstimatedDemand) * share)
		allocated := maxInt(0, minInt(offer.Sellable(), minInt(base, remaining)))

		allocation.Quantity = allocated
		remaining -= allocated
		allocations = append(allocations, allocation)
	}
	return allocations
}

const (
	minPriceAdjustment = 0.3
	maxPriceAdjustment = 1.5
	// elasticityDamping halves the market elasticity factor in the average-price adjustment
	elasticityDamping = 0.5
)

// PriceOrderAllocator adjusts demand for the average offered price, then fills offers
// cheapest-per-quality first until the adjusted demand is exhausted.
type PriceOrderAllocator struct {
	random shared.RandomSource
}

// NewPriceOrderAllocator creates the allocator; random jitters the sort order by ±5%
func NewPriceOrderAllocator(random shared.RandomSource) *PriceOrderAllocator {
	return &PriceOrderAllocator{random: random}
}

func (a *PriceOrderAllocator) Strategy() AllocationStrategy {
	return StrategyPriceOrder
}

// AdjustedDemand applies the average-price elasticity adjustment, clamped to [0.3, 1.5] of demand
func AdjustedDemand(baseDemand int, averagePrice, basePrice, elasticityFactor float64) int {
	ratio := 1.0
	if basePrice > 0 {
		ratio = averagePrice / basePrice
	}
	adjustment := 1.0 - (ratio-1.0)*elasticityFactor*elasticityDamping
	adjustment = clamp(adjustment, minPriceAdjustment, maxPriceAdjustment)
	return floorInt(float64(baseDemand) * adjustment)
}

func (a *PriceOrderAllocator) Allocate(req AllocationRequest) []Allocation {
	if len(req.Offers) == 0 {
		return nil
	}
	comp := req.Competition

	type keyed struct {
		offer   Offer
		sortKey float64
	}
	ordered := make([]keyed, len(req.Offers))
	units, priceSum := 0, 0.0
	for i, o := range req.Offers {
		quality := o.QualityFactor
		if quality <= 0 {
			quality = 0.01
		}
		price := o.UnitPrice.InexactFloat64()
		ordered[i] = keyed{offer: o, sortKey: price * a.random.Uniform(0.95, 1.05) / quality}
		units += o.Quantity
		priceSum += price * float64(o.Quantity)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].sortKey < ordered[j].sortKey
	})

	demand := comp.EstimatedDemand
	if units > 0 {
		demand = AdjustedDemand(comp.EstimatedDemand, priceSum/float64(units),
			comp.Segment.SimplifiedBasePrice(), req.MarketElasticityFactor)
	}
	if comp.MaximumVolume > 0 {
		demand = minInt(demand, comp.MaximumVolume)
	}

	remaining := demand
	allocations := make([]Allocation, 0, len(ordered))
	for _, k := range ordered {
		allocation := Allocation{Offer: k.offer, DemandAtPrice: comp.DemandAtPrice(k.offer.UnitPrice)}
		if remaining > 0 {
			allocation.Quantity = minInt(k.offer.Sellable(), remaining)
			remaining -= allocation.Quantity
		}
		allocations = append(allocations, allocation)
	}
	return allocations
}
