package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/domain/ledger"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

func TestNewTransaction_SaleIncome(t *testing.T) {
	tx, err := ledger.NewTransaction(
		"s", nil, shared.MustPeriod(3, 2024), time.Now(),
		ledger.TransactionTypeIncome, ledger.CategorySales,
		decimal.RequireFromString("750.00"), decimal.RequireFromString("10000.00"),
		"Sale City Bike", "sales_decision", "11",
	)

	require.NoError(t, err)
	assert.Equal(t, "10750.00", tx.BalanceAfter().StringFixed(2))
	assert.False(t, tx.IsCompetitorEntry())
	assert.False(t, tx.ID().IsZero())
}

func TestNewTransaction_CompetitorLiquidation(t *testing.T) {
	competitorID := uint(3)

	tx, err := ledger.NewTransaction(
		"s", &competitorID, shared.MustPeriod(6, 2024), time.Now(),
		ledger.TransactionTypeExpense, ledger.CategoryLiquidation,
		decimal.NewFromInt(-5625), decimal.NewFromInt(40000),
		"Liquidation", "production_lot", "9",
	)

	require.NoError(t, err)
	assert.True(t, tx.IsCompetitorEntry())
	assert.Equal(t, "34375.00", tx.BalanceAfter().StringFixed(2))
}

func TestNewTransaction_Validation(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		txType    ledger.TransactionType
		category  ledger.Category
		amount    int64
		field     string
	}{
		{"missing session", "", ledger.TransactionTypeIncome, ledger.CategorySales, 10, "session_id"},
		{"unknown type", "s", "refund", ledger.CategorySales, 10, "transaction_type"},
		{"unknown category", "s", ledger.TransactionTypeIncome, "fees", 10, "category"},
		{"positive expense", "s", ledger.TransactionTypeExpense, ledger.CategoryLiquidation, 10, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.NewTransaction(tt.sessionID, nil, shared.MustPeriod(1, 2024), time.Now(),
				tt.txType, tt.category, decimal.NewFromInt(tt.amount), decimal.Zero, "", "", "")

			var invalid *ledger.ErrInvalidTransaction
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestReconstructTransaction_BalanceInvariant(t *testing.T) {
	tx := ledger.ReconstructTransaction(
		ledger.NewTransactionID(), "s", nil, shared.MustPeriod(1, 2024), time.Now(),
		ledger.TransactionTypeIncome, ledger.CategorySales,
		decimal.NewFromInt(100), decimal.NewFromInt(1000), decimal.NewFromInt(1200),
		"", "", "",
	)

	var violation *ledger.ErrBalanceInvariantViolation
	assert.ErrorAs(t, tx.Validate(), &violation)
}

func TestParseTransactionID(t *testing.T) {
	id := ledger.NewTransactionID()

	parsed, err := ledger.ParseTransactionID(id.String())
	require.NoError(t, err)
	assert.True(t, id.Equals(parsed))

	_, err = ledger.ParseTransactionID("not-a-uuid")
	assert.Error(t, err)
}
