package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
)

type seeded struct {
	session  *session.Session
	market   *market.Market
	bikeType *market.BikeType
}

// seedWorld stores a session with one market and one bike type
func seedWorld(t *testing.T, db *gorm.DB) seeded {
	t.Helper()
	ctx := context.Background()

	s := newTestSession(t, persistence.NewGormSessionRepository(db), "Fixture")
	markets := persistence.NewGormMarketRepository(db)

	m, err := market.NewMarket(s.ID, "Berlin", "city", 300, 1.0, decimal.NewFromInt(10), decimal.NewFromInt(25))
	require.NoError(t, err)
	require.NoError(t, markets.SaveMarket(ctx, m))

	bt, err := market.NewBikeType(s.ID, "City Bike", 2.5, 4.0)
	require.NoError(t, err)
	require.NoError(t, markets.SaveBikeType(ctx, bt))

	return seeded{session: s, market: m, bikeType: bt}
}
