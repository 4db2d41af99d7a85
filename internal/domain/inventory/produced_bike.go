package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// ProducedBike is one player-owned finished bike
type ProducedBike struct {
	ID                uint
	SessionID         string
	BikeTypeID        uint
	Segment           market.PriceSegment
	Period            shared.Period
	ProductionCost    decimal.Decimal
	Sold              bool
	MonthsInInventory int
	StorageCost       decimal.Decimal
}

// NewProducedBike creates an unsold bike produced in period
func NewProducedBike(sessionID string, bikeTypeID uint, segment market.PriceSegment, period shared.Period, cost decimal.Decimal) *ProducedBike {
	return &ProducedBike{
		SessionID:      sessionID,
		BikeTypeID:     bikeTypeID,
		Segment:        segment,
		Period:         period,
		ProductionCost: cost,
		StorageCost:    decimal.Zero,
	}
}

// UpdateAge recomputes age and storage cost for the current period. Calling it twice
// with the same period yields the same values.
func (b *ProducedBike) UpdateAge(current shared.Period) {
	b.MonthsInInventory = AgeInMonths(b.Period, current)
	b.StorageCost = StorageCost(b.ProductionCost, b.MonthsInInventory)
}

// AgePenalty is the price factor for the bike's current age
func (b *ProducedBike) AgePenalty() float64 {
	return PenaltyFactor(b.MonthsInInventory)
}

// MarkSold removes the bike from future availability. Selling twice is an invariant violation.
func (b *ProducedBike) MarkSold() error {
	if b.Sold {
		return shared.NewInvariantViolation("produced_bike", b.ID, "already sold")
	}
	b.Sold = true
	return nil
}
