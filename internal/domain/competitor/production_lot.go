package competitor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/inventory"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// ProductionLot is one competitor's output of a bike type and segment in one period.
// At most one lot exists per (competitor, bike type, segment, period).
type ProductionLot struct {
	ID                  uint
	CompetitorID        uint
	BikeTypeID          uint
	Segment             market.PriceSegment
	Period              shared.Period
	QuantityPlanned     int
	QuantityProduced    int
	QuantityInInventory int
	CostPerUnit         decimal.Decimal
	MonthsInInventory   int
}

// NewProductionLot creates an empty lot for a production plan
func NewProductionLot(competitorID, bikeTypeID uint, segment market.PriceSegment, period shared.Period, planned int, cost decimal.Decimal) *ProductionLot {
	return &ProductionLot{
		CompetitorID:    competitorID,
		BikeTypeID:      bikeTypeID,
		Segment:         segment,
		Period:          period,
		QuantityPlanned: planned,
		CostPerUnit:     cost,
	}
}

// AddPlanned accumulates planned quantity when the same key is planned again
func (l *ProductionLot) AddPlanned(quantity int) {
	l.QuantityPlanned += quantity
}

// RecordYield adds actual output to the lot as fresh inventory. A lot planned twice
// in the same period accumulates both yields.
func (l *ProductionLot) RecordYield(produced int) {
	if produced < 0 {
		produced = 0
	}
	l.QuantityProduced += produced
	l.QuantityInInventory += produced
	l.MonthsInInventory = 0
}

// UpdateAge recomputes the age from the production period; idempotent per period
func (l *ProductionLot) UpdateAge(current shared.Period) {
	l.MonthsInInventory = inventory.AgeInMonths(l.Period, current)
}

// AgePenalty is the price factor for the lot's current age
func (l *ProductionLot) AgePenalty() float64 {
	return inventory.PenaltyFactor(l.MonthsInInventory)
}

// HasInventory reports whether any units remain
func (l *ProductionLot) HasInventory() bool {
	return l.QuantityInInventory > 0
}

// RemoveFromInventory takes sold or liquidated units out of stock.
// Removing more than is in stock breaks an invariant and is never clamped.
func (l *ProductionLot) RemoveFromInventory(quantity int) error {
	if quantity < 0 {
		return shared.NewInvariantViolation("production_lot", l.ID, fmt.Sprintf("negative removal %d", quantity))
	}
	if quantity > l.QuantityInInventory {
		return shared.NewInvariantViolation("production_lot", l.ID,
			fmt.Sprintf("removing %d units with only %d in inventory", quantity, l.QuantityInInventory))
	}
	l.QuantityInInventory -= quantity
	return nil
}
