//go:build property

package inventory_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/inventory"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

func TestProperty_AgingIsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("updating twice in the same period changes nothing", prop.ForAll(
		func(prodMonth, prodYear, curMonth, curYear, cost int) bool {
			bike := inventory.NewProducedBike("s", 1, market.SegmentStandard,
				shared.MustPeriod(prodMonth, prodYear), decimal.NewFromInt(int64(cost)))
			current := shared.MustPeriod(curMonth, curYear)

			bike.UpdateAge(current)
			age, storage, penalty := bike.MonthsInInventory, bike.StorageCost, bike.AgePenalty()
			bike.UpdateAge(current)

			return age >= 0 &&
				age == bike.MonthsInInventory &&
				storage.Equal(bike.StorageCost) &&
				penalty == bike.AgePenalty()
		},
		gen.IntRange(1, 12),
		gen.IntRange(2020, 2030),
		gen.IntRange(1, 12),
		gen.IntRange(2020, 2030),
		gen.IntRange(1, 5000),
	))

	properties.Property("penalty never increases with age", prop.ForAll(
		func(age int) bool {
			return inventory.PenaltyFactor(age+1) <= inventory.PenaltyFactor(age)
		},
		gen.IntRange(0, 60),
	))

	properties.TestingRun(t)
}
