package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// StorageCostRate is the monthly holding cost as a fraction of production cost
const StorageCostRate = 0.02

// AgeInMonths is the whole-month age of stock produced in produced, seen from current.
// Never negative.
func AgeInMonths(produced, current shared.Period) int {
	return current.MonthsSince(produced)
}

// PenaltyFactor is the price multiplier for stock of the given age
func PenaltyFactor(ageMonths int) float64 {
	switch {
	case ageMonths <= 1:
		return 1.00
	case ageMonths <= 3:
		return 0.95
	case ageMonths <= 6:
		return 0.90
	default:
		return 0.85
	}
}

// StorageCost is 2% of production cost per month of age, recomputed from the age each time
func StorageCost(productionCost decimal.Decimal, ageMonths int) decimal.Decimal {
	if ageMonths <= 0 {
		return decimal.Zero
	}
	return shared.RoundMoney(shared.ScaleMoney(productionCost, StorageCostRate).Mul(decimal.NewFromInt(int64(ageMonths))))
}
