package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

func TestMarketRepository_FindByName(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormMarketRepository(db)

	// Act
	m, err := repo.FindMarketByName(context.Background(), w.session.ID, "Berlin")
	require.NoError(t, err)
	bt, err := repo.FindBikeTypeByName(context.Background(), w.session.ID, "City Bike")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, w.market.ID, m.ID)
	assert.Equal(t, 300, m.MonthlyCapacity)
	assert.Equal(t, "10.00", m.TransportCostHome.StringFixed(2))
	assert.Equal(t, w.bikeType.ID, bt.ID)
	assert.InDelta(t, 2.5, bt.SkilledHours, 1e-9)
}

func TestMarketRepository_ScopedToSession(t *testing.T) {
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	other := seedWorld(t, db)
	repo := persistence.NewGormMarketRepository(db)

	markets, err := repo.ListMarkets(context.Background(), w.session.ID)
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, w.market.ID, markets[0].ID)

	_, err = repo.FindMarket(context.Background(), w.session.ID, other.market.ID)
	assert.ErrorIs(t, err, market.ErrMarketNotFound)
}
