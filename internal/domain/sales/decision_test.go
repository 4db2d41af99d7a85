package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

func newDecision(t *testing.T, quantity int, price, transport int64) *sales.Decision {
	t.Helper()
	d, err := sales.NewDecision("s", 1, 2, market.SegmentStandard, quantity,
		decimal.NewFromInt(price), decimal.NewFromInt(transport), shared.MustPeriod(3, 2024))
	require.NoError(t, err)
	d.ID = 11
	return d
}

func TestNewDecision_Validation(t *testing.T) {
	_, err := sales.NewDecision("s", 1, 2, market.SegmentCheap, 0, decimal.NewFromInt(100), decimal.Zero, shared.MustPeriod(1, 2024))
	var invalid *sales.ErrInvalidDecision
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "quantity", invalid.Field)

	_, err = sales.NewDecision("s", 1, 2, "luxury", 1, decimal.NewFromInt(100), decimal.Zero, shared.MustPeriod(1, 2024))
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "segment", invalid.Field)
}

func TestRecordSale_TransportChargedOnFirstUnitOnly(t *testing.T) {
	d := newDecision(t, 3, 800, 50)

	transport1, revenue1, err := d.RecordSale(decimal.NewFromInt(800))
	require.NoError(t, err)
	transport2, revenue2, err := d.RecordSale(decimal.NewFromInt(760))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(50).Equal(transport1))
	assert.True(t, decimal.NewFromInt(750).Equal(revenue1))
	assert.True(t, transport2.IsZero())
	assert.True(t, decimal.NewFromInt(760).Equal(revenue2))
	assert.True(t, decimal.NewFromInt(1510).Equal(d.ActualRevenue))
	assert.Equal(t, 2, d.QuantitySold)
}

func TestRecordSale_BeyondQuantityIsInvariantViolation(t *testing.T) {
	d := newDecision(t, 1, 500, 0)
	_, _, err := d.RecordSale(decimal.NewFromInt(500))
	require.NoError(t, err)

	_, _, err = d.RecordSale(decimal.NewFromInt(500))

	assert.ErrorIs(t, err, shared.ErrInvariantViolation)
}

func TestFinalize_UnsoldReasons(t *testing.T) {
	tests := []struct {
		name  string
		bound int
		sold  int
		want  sales.UnsoldReason
	}{
		{"fully sold", 5, 5, sales.ReasonNone},
		{"nothing sold", 5, 0, sales.ReasonMarketOversaturated},
		{"demand capped", 5, 2, sales.ReasonPartiallySoldOversaturated},
		{"inventory capped", 3, 3, sales.ReasonInsufficientInventory},
		{"no stock at all", 0, 0, sales.ReasonInsufficientInventory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDecision(t, 5, 800, 0)
			d.BindUnits(tt.bound)
			for i := 0; i < tt.sold; i++ {
				_, _, err := d.RecordSale(decimal.NewFromInt(800))
				require.NoError(t, err)
			}

			require.NoError(t, d.Finalize())

			assert.True(t, d.Processed)
			assert.Equal(t, tt.want, d.UnsoldReason)
		})
	}
}

func TestFinalize_OnlyOnce(t *testing.T) {
	d := newDecision(t, 2, 800, 0)
	require.NoError(t, d.Finalize())

	err := d.Finalize()

	assert.ErrorIs(t, err, shared.ErrInvariantViolation)
	_, _, err = d.RecordSale(decimal.NewFromInt(800))
	assert.ErrorIs(t, err, shared.ErrInvariantViolation)
}

func TestEffectivePriceAndExpectations(t *testing.T) {
	d := newDecision(t, 4, 800, 25)

	assert.Equal(t, "720.00", d.EffectivePrice(0.9).StringFixed(2))
	assert.Equal(t, "3100.00", d.ExpectedRevenue().StringFixed(2))
	assert.Equal(t, 4, d.Remaining())
	d.BindUnits(3)
	assert.Equal(t, 1, d.Remaining())
}

func TestSuccessRate(t *testing.T) {
	d := newDecision(t, 4, 800, 0)
	_, _, err := d.RecordSale(decimal.NewFromInt(800))
	require.NoError(t, err)

	assert.Equal(t, 25.0, d.SuccessRate())
}

func TestUnsoldReason_IsDemandCapped(t *testing.T) {
	assert.True(t, sales.ReasonMarketOversaturated.IsDemandCapped())
	assert.True(t, sales.ReasonPartiallySoldOversaturated.IsDemandCapped())
	assert.False(t, sales.ReasonInsufficientInventory.IsDemandCapped())
	assert.False(t, sales.ReasonNone.IsDemandCapped())
}
