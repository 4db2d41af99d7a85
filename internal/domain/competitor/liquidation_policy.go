package competitor

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// LiquidationAction is the policy outcome for one aged lot
type LiquidationAction string

const (
	// LiquidationActionLiquidate clears most of the lot at a write-down
	LiquidationActionLiquidate LiquidationAction = "LIQUIDATE"

	// LiquidationActionHold keeps the stock and lets the age penalty erode its price
	LiquidationActionHold LiquidationAction = "HOLD"

	// LiquidationActionNone applies to lots too young to consider
	LiquidationActionNone LiquidationAction = "NONE"
)

// LiquidationPolicy decides how competitors treat excess inventory.
// Aggressive competitors clear old stock at a loss, conservative ones hold it.
type LiquidationPolicy struct {
	MinAgeMonths          int
	AggressiveThreshold   float64
	ConservativeThreshold float64
	WriteDownRate         float64
	MinRate               float64
	MaxRate               float64
}

// DefaultLiquidationPolicy liquidates lots aged 6+ months of competitors above 0.6 aggressiveness
func DefaultLiquidationPolicy() LiquidationPolicy {
	return LiquidationPolicy{
		MinAgeMonths:          6,
		AggressiveThreshold:   0.6,
		ConservativeThreshold: 0.4,
		WriteDownRate:         0.3,
		MinRate:               0.6,
		MaxRate:               0.9,
	}
}

// Decide returns the action for a lot owned by c
func (p LiquidationPolicy) Decide(c *Competitor, lot *ProductionLot) LiquidationAction {
	if !lot.HasInventory() || lot.MonthsInInventory < p.MinAgeMonths {
		return LiquidationActionNone
	}
	if c.Aggressiveness > p.AggressiveThreshold {
		return LiquidationActionLiquidate
	}
	if c.Aggressiveness < p.ConservativeThreshold {
		return LiquidationActionHold
	}
	return LiquidationActionNone
}

// Quantity is the number of units cleared at the given rate, drawn from [MinRate, MaxRate]
func (p LiquidationPolicy) Quantity(inventory int, rate float64) int {
	return int(float64(inventory) * rate)
}

// WriteDown is the resource debit for liquidating quantity units at cost
func (p LiquidationPolicy) WriteDown(cost decimal.Decimal, quantity int) decimal.Decimal {
	return shared.RoundMoney(shared.ScaleMoney(cost.Mul(decimal.NewFromInt(int64(quantity))), p.WriteDownRate))
}
