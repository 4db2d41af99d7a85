package competitor

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
)

const (
	resourcesPerUnit = 1000
	minEfficiency    = 0.01
)

// Competitor is an AI-controlled bicycle manufacturer.
// Counters change only through the methods below, inside one month's transaction.
type Competitor struct {
	ID                 uint
	SessionID          string
	Name               string
	Strategy           Strategy
	FinancialResources decimal.Decimal
	MarketPresence     float64
	Aggressiveness     float64
	Efficiency         float64

	TotalBikesProduced int
	TotalBikesSold     int
	TotalRevenue       decimal.Decimal
}

// NewCompetitor creates a competitor with validation
func NewCompetitor(
	sessionID, name string,
	strategy Strategy,
	resources decimal.Decimal,
	marketPresence, aggressiveness, efficiency float64,
) (*Competitor, error) {
	if name == "" {
		return nil, &ErrInvalidCompetitor{Field: "name", Reason: "cannot be empty"}
	}
	if !strategy.IsValid() {
		return nil, &ErrInvalidCompetitor{Field: "strategy", Reason: "unknown strategy " + string(strategy)}
	}
	if marketPresence < 0 || marketPresence > 100 {
		return nil, &ErrInvalidCompetitor{Field: "market_presence", Reason: "must be within 0-100"}
	}
	if aggressiveness < 0 || aggressiveness > 1 {
		return nil, &ErrInvalidCompetitor{Field: "aggressiveness", Reason: "must be within 0-1"}
	}
	if efficiency <= 0 || efficiency > 1 {
		return nil, &ErrInvalidCompetitor{Field: "efficiency", Reason: "must be within (0,1]"}
	}
	return &Competitor{
		SessionID:          sessionID,
		Name:               name,
		Strategy:           strategy,
		FinancialResources: resources,
		MarketPresence:     marketPresence,
		Aggressiveness:     aggressiveness,
		Efficiency:         efficiency,
		TotalRevenue:       decimal.Zero,
	}, nil
}

// ProductionCapacity is a soft unit budget: one bike per 1000 of resources,
// scaled by efficiency and market presence
func (c *Competitor) ProductionCapacity() int {
	if !c.FinancialResources.IsPositive() {
		return 0
	}
	base := c.FinancialResources.Div(decimal.NewFromInt(resourcesPerUnit)).IntPart()
	return int(float64(base) * c.Efficiency * (0.5 + c.MarketPresence/100.0))
}

// OfferQuality is the quality factor of this competitor's offers in a segment
func (c *Competitor) OfferQuality(segment market.PriceSegment) float64 {
	return c.Efficiency * c.Strategy.QualityBonus() * c.Strategy.SpecialtyDiscount(segment)
}

// UnitProductionCost is the cost of one bike of the given type for this competitor
func (c *Competitor) UnitProductionCost(bikeType *market.BikeType) decimal.Decimal {
	return c.Strategy.ProductionCost(bikeType, c.Efficiency)
}

// RecordProduction adds produced units to the cumulative counter
func (c *Competitor) RecordProduction(units int) {
	if units > 0 {
		c.TotalBikesProduced += units
	}
}

// RecordSale credits units sold and revenue
func (c *Competitor) RecordSale(units int, revenue decimal.Decimal) {
	c.TotalBikesSold += units
	c.TotalRevenue = c.TotalRevenue.Add(revenue)
}

// WriteDown debits financial resources without a sale
func (c *Competitor) WriteDown(amount decimal.Decimal) {
	c.FinancialResources = c.FinancialResources.Sub(amount)
}
