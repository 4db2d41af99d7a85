package shared_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, "10.13", shared.RoundMoney(decimal.RequireFromString("10.125")).StringFixed(2))
	assert.Equal(t, "10.12", shared.RoundMoney(decimal.RequireFromString("10.1249")).StringFixed(2))
}

func TestMoneyFromFloat(t *testing.T) {
	assert.True(t, decimal.RequireFromString("499.99").Equal(shared.MoneyFromFloat(499.9899)))
}

func TestScaleMoney_DoesNotRound(t *testing.T) {
	scaled := shared.ScaleMoney(decimal.RequireFromString("10.01"), 0.5)
	assert.Equal(t, "5.005", scaled.String())
}
