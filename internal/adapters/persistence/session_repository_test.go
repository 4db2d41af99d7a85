package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

func newTestSession(t *testing.T, repo *persistence.GormSessionRepository, name string) *session.Session {
	t.Helper()
	s, err := session.NewSession(name, shared.MustPeriod(1, 2024), decimal.NewFromInt(80000))
	require.NoError(t, err)
	require.NoError(t, repo.Add(context.Background(), s))
	return s
}

func TestSessionRepository_AddAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSessionRepository(db)
	s := newTestSession(t, repo, "Spring Game")

	// Act
	found, err := repo.FindByID(context.Background(), s.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, s.ID, found.ID)
	assert.Equal(t, "Spring Game", found.Name)
	assert.Equal(t, shared.MustPeriod(1, 2024), found.Period)
	assert.True(t, decimal.NewFromInt(80000).Equal(found.Balance))
}

func TestSessionRepository_SavePersistsClockAndBalance(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSessionRepository(db)
	s := newTestSession(t, repo, "Game")
	s.AdvanceMonth()
	s.Credit(decimal.RequireFromString("1234.56"))

	// Act
	err := repo.Save(context.Background(), s)

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.MustPeriod(2, 2024), found.Period)
	assert.Equal(t, "81234.56", found.Balance.StringFixed(2))
}

func TestSessionRepository_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSessionRepository(db)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	ghost, err := session.NewSession("Ghost", shared.MustPeriod(1, 2024), decimal.Zero)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(context.Background(), ghost), session.ErrSessionNotFound)
}

func TestSessionRepository_ListNewestFirst(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSessionRepository(db)
	older, err := session.NewSession("Older", shared.MustPeriod(1, 2024), decimal.Zero)
	require.NoError(t, err)
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Add(context.Background(), older))
	newer := newTestSession(t, repo, "Newer")

	// Act
	sessions, err := repo.List(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer.ID, sessions[0].ID)
	assert.Equal(t, older.ID, sessions[1].ID)
}
