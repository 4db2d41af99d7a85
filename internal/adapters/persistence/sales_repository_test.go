package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

func newDecision(t *testing.T, w seeded, period shared.Period) *sales.Decision {
	t.Helper()
	d, err := sales.NewDecision(w.session.ID, w.market.ID, w.bikeType.ID, market.SegmentStandard,
		10, decimal.NewFromInt(450), decimal.NewFromInt(10), period)
	require.NoError(t, err)
	return d
}

func TestSalesRepository_ListPendingUpToPeriod(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormSalesRepository(db)
	ctx := context.Background()

	dec := newDecision(t, w, shared.MustPeriod(12, 2023))
	mar := newDecision(t, w, shared.MustPeriod(3, 2024))
	jun := newDecision(t, w, shared.MustPeriod(6, 2024))
	done := newDecision(t, w, shared.MustPeriod(2, 2024))
	done.Processed = true
	for _, d := range []*sales.Decision{jun, mar, dec, done} {
		require.NoError(t, repo.Save(ctx, d))
	}

	// Act
	pending, err := repo.ListPending(ctx, w.session.ID, shared.MustPeriod(3, 2024))

	// Assert
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, dec.ID, pending[0].ID)
	assert.Equal(t, mar.ID, pending[1].ID)
}

func TestSalesRepository_ListProcessedSince(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormSalesRepository(db)
	ctx := context.Background()

	old := newDecision(t, w, shared.MustPeriod(9, 2023))
	recent := newDecision(t, w, shared.MustPeriod(3, 2024))
	pending := newDecision(t, w, shared.MustPeriod(3, 2024))
	for _, d := range []*sales.Decision{old, recent} {
		d.Processed = true
		d.QuantitySold = 4
		d.ActualRevenue = decimal.NewFromInt(1760)
		d.UnsoldReason = sales.ReasonInsufficientInventory
	}
	for _, d := range []*sales.Decision{old, recent, pending} {
		require.NoError(t, repo.Save(ctx, d))
	}

	// Act
	processed, err := repo.ListProcessedSince(ctx, w.session.ID, shared.MustPeriod(1, 2024))

	// Assert
	require.NoError(t, err)
	require.Len(t, processed, 1)
	assert.Equal(t, recent.ID, processed[0].ID)
	assert.Equal(t, 4, processed[0].QuantitySold)
	assert.Equal(t, "1760.00", processed[0].ActualRevenue.StringFixed(2))
	assert.Equal(t, sales.ReasonInsufficientInventory, processed[0].UnsoldReason)
}

func TestSalesRepository_OrdersForKey(t *testing.T) {
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormSalesRepository(db)
	ctx := context.Background()
	period := shared.MustPeriod(3, 2024)

	for bikeID := uint(1); bikeID <= 2; bikeID++ {
		require.NoError(t, repo.Record(ctx, &sales.Order{
			SessionID:     w.session.ID,
			MarketID:      w.market.ID,
			BikeTypeID:    w.bikeType.ID,
			Segment:       market.SegmentStandard,
			BikeID:        bikeID,
			DecisionID:    1,
			Period:        period,
			SalePrice:     decimal.NewFromInt(450),
			TransportCost: decimal.NewFromInt(10),
		}))
	}

	orders, err := repo.ListForKey(ctx, market.Key{
		SessionID: w.session.ID, MarketID: w.market.ID, BikeTypeID: w.bikeType.ID,
		Segment: market.SegmentStandard, Period: period,
	})
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	// one order per bike
	err = repo.Record(ctx, &sales.Order{SessionID: w.session.ID, BikeID: 1, Period: period, Segment: market.SegmentStandard})
	assert.Error(t, err)
}
