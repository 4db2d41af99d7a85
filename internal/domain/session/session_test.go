package session_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

func TestAdvanceMonth_RollsOverDecember(t *testing.T) {
	s, err := session.NewSession("Game", shared.MustPeriod(12, 2024), decimal.NewFromInt(80000))
	require.NoError(t, err)

	next := s.AdvanceMonth()

	assert.Equal(t, shared.MustPeriod(1, 2025), next)
	assert.Equal(t, next, s.Period)
}

func TestCredit_ReturnsPreviousBalance(t *testing.T) {
	s, err := session.NewSession("Game", shared.MustPeriod(1, 2024), decimal.NewFromInt(1000))
	require.NoError(t, err)

	before := s.Credit(decimal.RequireFromString("250.50"))

	assert.Equal(t, "1000.00", before.StringFixed(2))
	assert.Equal(t, "1250.50", s.Balance.StringFixed(2))
}

func TestNewSession_Validation(t *testing.T) {
	_, err := session.NewSession("", shared.MustPeriod(1, 2024), decimal.Zero)
	assert.Error(t, err)

	_, err = session.NewSession("Game", shared.Period{Month: 13, Year: 2024}, decimal.Zero)
	assert.Error(t, err)
}
