package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bikesim-go/internal/domain/ledger"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

func TestTransactionRepository_FiltersAndCounts(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormTransactionRepository(db)
	ctx := context.Background()
	march := shared.MustPeriod(3, 2024)
	june := shared.MustPeriod(6, 2024)
	competitorID := uint(7)
	base := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	entries := []struct {
		competitor *uint
		period     shared.Period
		txType     ledger.TransactionType
		category   ledger.Category
		amount     int64
	}{
		{nil, march, ledger.TransactionTypeIncome, ledger.CategorySales, 900},
		{nil, june, ledger.TransactionTypeIncome, ledger.CategorySales, 400},
		{&competitorID, march, ledger.TransactionTypeIncome, ledger.CategoryLiquidation, 1200},
		{&competitorID, march, ledger.TransactionTypeExpense, ledger.CategoryLiquidation, -300},
	}
	for i, e := range entries {
		tx, err := ledger.NewTransaction(w.session.ID, e.competitor, e.period, base.Add(time.Duration(i)*time.Minute),
			e.txType, e.category, decimal.NewFromInt(e.amount), decimal.Zero, "entry", "", "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tx))
	}

	// Act
	liquidation := ledger.CategoryLiquidation
	liquidationEntries, err := repo.FindBySession(ctx, w.session.ID, ledger.QueryOptions{Category: &liquidation})
	require.NoError(t, err)
	playerMarch, err := repo.FindBySession(ctx, w.session.ID, ledger.QueryOptions{Period: &march, PlayerOnly: true})
	require.NoError(t, err)
	expense := ledger.TransactionTypeExpense
	expenses, err := repo.CountBySession(ctx, w.session.ID, ledger.QueryOptions{TransactionType: &expense})
	require.NoError(t, err)
	all, err := repo.CountBySession(ctx, w.session.ID, ledger.QueryOptions{})
	require.NoError(t, err)

	// Assert
	require.Len(t, liquidationEntries, 2)
	assert.True(t, liquidationEntries[0].Amount().IsNegative(), "newest first by default")
	assert.True(t, liquidationEntries[0].IsCompetitorEntry())
	require.Len(t, playerMarch, 1)
	assert.Equal(t, "900.00", playerMarch[0].Amount().StringFixed(2))
	assert.Equal(t, 1, expenses)
	assert.Equal(t, 4, all)
}

func TestTransactionRepository_FindByIDRoundTrip(t *testing.T) {
	db := helpers.NewTestDB(t)
	w := seedWorld(t, db)
	repo := persistence.NewGormTransactionRepository(db)
	ctx := context.Background()

	tx, err := ledger.NewTransaction(w.session.ID, nil, shared.MustPeriod(3, 2024), time.Now().UTC(),
		ledger.TransactionTypeIncome, ledger.CategorySales, decimal.RequireFromString("450.00"),
		decimal.NewFromInt(80000), "sale of 1 bike", "sales_decision", "12")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx))

	found, err := repo.FindByID(ctx, tx.ID(), w.session.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID(), found.ID())
	assert.Equal(t, "80450.00", found.BalanceAfter().StringFixed(2))
	assert.Equal(t, "sales_decision", found.RelatedEntityType())
	assert.Nil(t, found.CompetitorID())
}
