package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

func TestCompetitionRepository_UpsertKeepsOneRowPerKey(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormCompetitionRepository(db)
	key := market.Key{
		SessionID:  w.session.ID,
		MarketID:   w.market.ID,
		BikeTypeID: w.bikeType.ID,
		Segment:    market.SegmentCheap,
		Period:     shared.MustPeriod(3, 2024),
	}

	first := market.NewCompetition(key)
	first.EstimatedDemand = 72
	first.MaximumVolume = 86
	require.NoError(t, repo.Upsert(context.Background(), first))

	// Act
	second := market.NewCompetition(key)
	second.EstimatedDemand = 90
	second.MaximumVolume = 108
	second.ActualSalesVolume = 40
	second.AveragePrice = decimal.RequireFromString("412.50")
	err := repo.Upsert(context.Background(), second)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&persistence.MarketCompetitionModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.Find(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, 90, stored.EstimatedDemand)
	assert.Equal(t, 108, stored.MaximumVolume)
	assert.Equal(t, 40, stored.ActualSalesVolume)
	assert.Equal(t, "412.50", stored.AveragePrice.StringFixed(2))
}

func TestCompetitionRepository_FindMissing(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCompetitionRepository(db)

	_, err := repo.Find(context.Background(), market.Key{SessionID: "none", Period: shared.MustPeriod(1, 2024)})

	assert.ErrorIs(t, err, market.ErrCompetitionNotFound)
}

func TestCompetitionRepository_ListForPeriod(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormCompetitionRepository(db)
	march := shared.MustPeriod(3, 2024)
	for _, seg := range []market.PriceSegment{market.SegmentCheap, market.SegmentPremium} {
		key := market.Key{SessionID: w.session.ID, MarketID: w.market.ID, BikeTypeID: w.bikeType.ID, Segment: seg, Period: march}
		require.NoError(t, repo.Upsert(context.Background(), market.NewCompetition(key)))
	}
	juneKey := market.Key{SessionID: w.session.ID, MarketID: w.market.ID, BikeTypeID: w.bikeType.ID, Segment: market.SegmentCheap, Period: shared.MustPeriod(6, 2024)}
	require.NoError(t, repo.Upsert(context.Background(), market.NewCompetition(juneKey)))

	// Act
	competitions, err := repo.ListForPeriod(context.Background(), w.session.ID, march)

	// Assert
	require.NoError(t, err)
	assert.Len(t, competitions, 2)
	for _, c := range competitions {
		assert.Equal(t, march, c.Period)
	}
}
