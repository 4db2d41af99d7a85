package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

func TestDemandConfigRepository_UnsetValuesAreNil(t *testing.T) {
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormDemandConfigRepository(db)
	ctx := context.Background()

	pct, err := repo.DemandPercentage(ctx, w.session.ID, w.market.ID, w.bikeType.ID)
	require.NoError(t, err)
	assert.Nil(t, pct)

	sensitivity, err := repo.PriceSensitivity(ctx, w.session.ID, w.market.ID, market.SegmentCheap)
	require.NoError(t, err)
	assert.Nil(t, sensitivity)

	price, err := repo.ConfiguredPrice(ctx, w.session.ID, w.bikeType.ID, market.SegmentCheap)
	require.NoError(t, err)
	assert.Nil(t, price)
}

func TestDemandConfigRepository_SetOverwritesPreviousValue(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormDemandConfigRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.SetDemandPercentage(ctx, w.session.ID, w.market.ID, w.bikeType.ID, 20))
	require.NoError(t, repo.SetPriceSensitivity(ctx, w.session.ID, w.market.ID, market.SegmentCheap, 60))
	require.NoError(t, repo.SetConfiguredPrice(ctx, w.session.ID, w.bikeType.ID, market.SegmentCheap, decimal.NewFromInt(300)))

	// Act
	require.NoError(t, repo.SetDemandPercentage(ctx, w.session.ID, w.market.ID, w.bikeType.ID, 40))
	require.NoError(t, repo.SetConfiguredPrice(ctx, w.session.ID, w.bikeType.ID, market.SegmentCheap, decimal.RequireFromString("349.90")))

	// Assert
	pct, err := repo.DemandPercentage(ctx, w.session.ID, w.market.ID, w.bikeType.ID)
	require.NoError(t, err)
	require.NotNil(t, pct)
	assert.InDelta(t, 40.0, *pct, 1e-9)

	sensitivity, err := repo.PriceSensitivity(ctx, w.session.ID, w.market.ID, market.SegmentCheap)
	require.NoError(t, err)
	require.NotNil(t, sensitivity)
	assert.InDelta(t, 60.0, *sensitivity, 1e-9)

	price, err := repo.ConfiguredPrice(ctx, w.session.ID, w.bikeType.ID, market.SegmentCheap)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, "349.90", price.StringFixed(2))
}

func TestDemandConfigRepository_EffectsNeutralUntilSet(t *testing.T) {
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormDemandConfigRepository(db)
	ctx := context.Background()

	effects, err := repo.Effects(ctx, w.session.ID)
	require.NoError(t, err)
	assert.Equal(t, market.NeutralBusinessEffects(), effects)

	require.NoError(t, repo.SetEffects(ctx, w.session.ID, market.BusinessEffects{DemandBoost: 10, DemandModifier: 1.2}))
	require.NoError(t, repo.SetEffects(ctx, w.session.ID, market.BusinessEffects{DemandBoost: 5, DemandModifier: 1.1}))

	effects, err = repo.Effects(ctx, w.session.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, effects.DemandBoost, 1e-9)
	assert.InDelta(t, 1.1, effects.DemandModifier, 1e-9)
}
