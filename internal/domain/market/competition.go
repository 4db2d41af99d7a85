package market

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// Key identifies one market segment in one period of one session
type Key struct {
	SessionID  string
	MarketID   uint
	BikeTypeID uint
	Segment    PriceSegment
	Period     shared.Period
}

// Competition is the per-key snapshot of market state. At most one exists per Key.
type Competition struct {
	ID uint
	Key

	EstimatedDemand   int
	MaximumVolume     int
	TotalSupply       int
	ActualSalesVolume int
	SaturationLevel   float64
	AveragePrice      decimal.Decimal
	PricePressure     float64
	Elasticity        float64
	OptimalPrice      decimal.Decimal
}

// NewCompetition creates an empty snapshot for a key
func NewCompetition(key Key) *Competition {
	return &Competition{
		Key:          key,
		Elasticity:   1.0,
		OptimalPrice: decimal.NewFromInt(500),
		AveragePrice: decimal.Zero,
	}
}

// VolumeEstimate is the output of the volume engine for one key
type VolumeEstimate struct {
	EstimatedDemand int
	MaximumVolume   int
	Elasticity      float64
	OptimalPrice    decimal.Decimal
}

// ApplyVolume overwrites the demand-shaping fields, leaving observed outcomes untouched
func (c *Competition) ApplyVolume(v VolumeEstimate) {
	c.EstimatedDemand = v.EstimatedDemand
	c.MaximumVolume = v.MaximumVolume
	c.Elasticity = v.Elasticity
	c.OptimalPrice = v.OptimalPrice
}

// DemandAtPrice evaluates the constant-elasticity curve
// Q(P) = demand * (optimal / max(P,1))^elasticity, capped at the maximum volume.
func (c *Competition) DemandAtPrice(price decimal.Decimal) int {
	if !c.OptimalPrice.IsPositive() {
		return c.EstimatedDemand
	}
	p := math.Max(price.InexactFloat64(), 1.0)
	ratio := c.OptimalPrice.InexactFloat64() / p
	q := floorInt(float64(c.EstimatedDemand) * math.Pow(ratio, c.Elasticity))
	return minInt(q, c.MaximumVolume)
}

// RemainingCapacity is the unsold part of the maximum volume
func (c *Competition) RemainingCapacity(sold int) int {
	return maxInt(0, c.MaximumVolume-sold)
}

// RecordOutcome updates supply, sales, saturation, average price and price pressure
// from a completed allocation pass
func (c *Competition) RecordOutcome(offers []Offer, allocations []Allocation) {
	supply := 0
	weighted := decimal.Zero
	for _, o := range offers {
		supply += o.Quantity
		weighted = weighted.Add(o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity))))
	}

	c.TotalSupply = supply
	c.ActualSalesVolume = TotalAllocated(allocations)

	if c.MaximumVolume > 0 {
		c.SaturationLevel = float64(supply) / float64(c.MaximumVolume)
	} else {
		c.SaturationLevel = 1.0
	}

	if supply > 0 {
		c.AveragePrice = shared.RoundMoney(weighted.Div(decimal.NewFromInt(int64(supply))))
	}

	if c.SaturationLevel > 1.0 {
		c.PricePressure = -math.Min(0.5, (c.SaturationLevel-1.0)*0.3)
	} else {
		c.PricePressure = (1.0 - c.SaturationLevel) * 0.2
	}
}
