package cli

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodFlags(t *testing.T) {
	p, err := parsePeriodFlags(0, 0)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = parsePeriodFlags(3, 2024)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 3, p.Month)
	assert.Equal(t, 2024, p.Year)

	_, err = parsePeriodFlags(13, 2024)
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "+12.50 €", formatSigned(decimal.RequireFromString("12.5")))
	assert.Equal(t, "-3.00 €", formatSigned(decimal.NewFromInt(-3)))
	assert.Equal(t, "0.00 €", formatEuros(decimal.Zero))
}

func TestResolveSessionID_PrefersFlag(t *testing.T) {
	sessionID = "flag-session"
	defer func() { sessionID = "" }()

	id, err := resolveSessionID()
	require.NoError(t, err)
	assert.Equal(t, "flag-session", id)
}

func TestParseMoney(t *testing.T) {
	d, err := parseMoney("price", "420.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("420.5")))

	_, err = parseMoney("price", "cheap")
	assert.ErrorContains(t, err, "--price")
}
