package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

func seedCompetitor(t *testing.T, repo *persistence.GormCompetitorRepository, sessionID, name string) *competitor.Competitor {
	t.Helper()
	c, err := competitor.NewCompetitor(sessionID, name, competitor.StrategyCheapOnly, decimal.NewFromInt(500000), 0.3, 0.5, 0.8)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func TestCompetitorRepository_StockedLotsScopedBySession(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	other := seedWorld(t, db)
	repo := persistence.NewGormCompetitorRepository(db)
	ctx := context.Background()

	mine := seedCompetitor(t, repo, w.session.ID, "Velo AG")
	theirs := seedCompetitor(t, repo, other.session.ID, "Rad GmbH")

	stocked := competitor.NewProductionLot(mine.ID, w.bikeType.ID, market.SegmentCheap, shared.MustPeriod(1, 2024), 50, decimal.NewFromInt(250))
	stocked.RecordYield(45)
	empty := competitor.NewProductionLot(mine.ID, w.bikeType.ID, market.SegmentPremium, shared.MustPeriod(1, 2024), 20, decimal.NewFromInt(600))
	foreign := competitor.NewProductionLot(theirs.ID, other.bikeType.ID, market.SegmentCheap, shared.MustPeriod(1, 2024), 30, decimal.NewFromInt(250))
	foreign.RecordYield(30)
	for _, lot := range []*competitor.ProductionLot{stocked, empty, foreign} {
		require.NoError(t, repo.SaveLot(ctx, lot))
	}

	// Act
	lots, err := repo.ListStocked(ctx, w.session.ID)

	// Assert
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, stocked.ID, lots[0].ID)
	assert.Equal(t, 45, lots[0].QuantityInInventory)

	filtered, err := repo.ListStockedFor(ctx, w.session.ID, w.bikeType.ID, market.SegmentPremium)
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestCompetitorRepository_FindLotByKey(t *testing.T) {
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormCompetitorRepository(db)
	ctx := context.Background()
	c := seedCompetitor(t, repo, w.session.ID, "Velo AG")
	period := shared.MustPeriod(2, 2024)

	_, err := repo.FindLot(ctx, c.ID, w.bikeType.ID, market.SegmentCheap, period)
	assert.ErrorIs(t, err, competitor.ErrLotNotFound)

	lot := competitor.NewProductionLot(c.ID, w.bikeType.ID, market.SegmentCheap, period, 10, decimal.NewFromInt(250))
	require.NoError(t, repo.SaveLot(ctx, lot))

	found, err := repo.FindLot(ctx, c.ID, w.bikeType.ID, market.SegmentCheap, period)
	require.NoError(t, err)
	assert.Equal(t, lot.ID, found.ID)
	assert.Equal(t, 10, found.QuantityPlanned)
}

func TestCompetitorRepository_SalesJoinedThroughCompetitor(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormCompetitorRepository(db)
	ctx := context.Background()
	c := seedCompetitor(t, repo, w.session.ID, "Velo AG")
	period := shared.MustPeriod(3, 2024)

	sale := competitor.NewSale(c.ID, w.market.ID, w.bikeType.ID, market.SegmentCheap, period, 40, 25, decimal.RequireFromString("299.99"))
	require.NoError(t, repo.RecordSale(ctx, sale))

	// Act
	key := market.Key{
		SessionID: w.session.ID, MarketID: w.market.ID, BikeTypeID: w.bikeType.ID,
		Segment: market.SegmentCheap, Period: period,
	}
	listed, err := repo.ListSales(ctx, w.session.ID, key)

	// Assert
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 25, listed[0].QuantitySold)
	assert.Equal(t, "7499.75", listed[0].TotalRevenue.StringFixed(2))

	other, err := repo.ListSales(ctx, "another-session", key)
	require.NoError(t, err)
	assert.Empty(t, other)
}
