package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bikesim-go/internal/domain/inventory"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

func TestProducedBikeRepository_ListAvailableOldestFirst(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormProducedBikeRepository(db)
	ctx := context.Background()
	cost := decimal.NewFromInt(300)

	newer := inventory.NewProducedBike(w.session.ID, w.bikeType.ID, market.SegmentStandard, shared.MustPeriod(3, 2024), cost)
	older := inventory.NewProducedBike(w.session.ID, w.bikeType.ID, market.SegmentStandard, shared.MustPeriod(11, 2023), cost)
	middle := inventory.NewProducedBike(w.session.ID, w.bikeType.ID, market.SegmentStandard, shared.MustPeriod(1, 2024), cost)
	otherSegment := inventory.NewProducedBike(w.session.ID, w.bikeType.ID, market.SegmentPremium, shared.MustPeriod(1, 2024), cost)
	require.NoError(t, repo.SaveAll(ctx, []*inventory.ProducedBike{newer, older, middle, otherSegment}))

	// Act
	bikes, err := repo.ListAvailable(ctx, w.session.ID, w.bikeType.ID, market.SegmentStandard, 10, nil)

	// Assert
	require.NoError(t, err)
	require.Len(t, bikes, 3)
	assert.Equal(t, older.ID, bikes[0].ID)
	assert.Equal(t, middle.ID, bikes[1].ID)
	assert.Equal(t, newer.ID, bikes[2].ID)
}

func TestProducedBikeRepository_ListAvailableExcludesAndLimits(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormProducedBikeRepository(db)
	ctx := context.Background()

	var bikes []*inventory.ProducedBike
	for i := 0; i < 5; i++ {
		bikes = append(bikes, inventory.NewProducedBike(w.session.ID, w.bikeType.ID, market.SegmentCheap, shared.MustPeriod(1, 2024), decimal.NewFromInt(200)))
	}
	require.NoError(t, repo.SaveAll(ctx, bikes))
	require.NoError(t, bikes[1].MarkSold())
	require.NoError(t, repo.Save(ctx, bikes[1]))

	// Act
	available, err := repo.ListAvailable(ctx, w.session.ID, w.bikeType.ID, market.SegmentCheap, 2, []uint{bikes[0].ID})

	// Assert
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, bikes[2].ID, available[0].ID)
	assert.Equal(t, bikes[3].ID, available[1].ID)

	none, err := repo.ListAvailable(ctx, w.session.ID, w.bikeType.ID, market.SegmentCheap, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProducedBikeRepository_SavePersistsAge(t *testing.T) {
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormProducedBikeRepository(db)
	ctx := context.Background()

	bike := inventory.NewProducedBike(w.session.ID, w.bikeType.ID, market.SegmentCheap, shared.MustPeriod(1, 2024), decimal.NewFromInt(500))
	require.NoError(t, repo.Save(ctx, bike))
	bike.UpdateAge(shared.MustPeriod(5, 2024))
	require.NoError(t, repo.Save(ctx, bike))

	found, err := repo.FindByID(ctx, bike.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, found.MonthsInInventory)
	assert.True(t, bike.StorageCost.Equal(found.StorageCost))

	unsold, err := repo.ListUnsold(ctx, w.session.ID)
	require.NoError(t, err)
	assert.Len(t, unsold, 1)
}
