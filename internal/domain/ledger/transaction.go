package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// Transaction is the aggregate root representing one ledger entry.
// Transactions are immutable once created and follow strict invariants.
type Transaction struct {
	id                TransactionID
	sessionID         string
	competitorID      *uint // nil for entries of the player company
	period            shared.Period
	timestamp         time.Time
	transactionType   TransactionType
	category          Category
	amount            decimal.Decimal // positive for income, negative for expenses
	balanceBefore     decimal.Decimal
	balanceAfter      decimal.Decimal
	description       string
	relatedEntityType string // e.g. "sales_decision", "production_lot"
	relatedEntityID   string
}

// NewTransaction creates a new transaction with validation
func NewTransaction(
	sessionID string,
	competitorID *uint,
	period shared.Period,
	timestamp time.Time,
	transactionType TransactionType,
	category Category,
	amount decimal.Decimal,
	balanceBefore decimal.Decimal,
	description string,
	relatedEntityType string,
	relatedEntityID string,
) (*Transaction, error) {
	if sessionID == "" {
		return nil, &ErrInvalidTransaction{Field: "session_id", Reason: "session_id cannot be empty"}
	}

	if !transactionType.IsValid() {
		return nil, &ErrInvalidTransaction{
			Field:  "transaction_type",
			Reason: fmt.Sprintf("invalid transaction type: %s", transactionType),
		}
	}

	if !category.IsValid() {
		return nil, &ErrInvalidTransaction{
			Field:  "category",
			Reason: fmt.Sprintf("invalid category: %s", category),
		}
	}

	t := &Transaction{
		id:                NewTransactionID(),
		sessionID:         sessionID,
		competitorID:      competitorID,
		period:            period,
		timestamp:         timestamp,
		transactionType:   transactionType,
		category:          category,
		amount:            amount,
		balanceBefore:     balanceBefore,
		balanceAfter:      balanceBefore.Add(amount),
		description:       description,
		relatedEntityType: relatedEntityType,
		relatedEntityID:   relatedEntityID,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// ReconstructTransaction reconstructs a transaction from persistence
// This bypasses validation and is used by the repository
func ReconstructTransaction(
	id TransactionID,
	sessionID string,
	competitorID *uint,
	period shared.Period,
	timestamp time.Time,
	transactionType TransactionType,
	category Category,
	amount decimal.Decimal,
	balanceBefore decimal.Decimal,
	balanceAfter decimal.Decimal,
	description string,
	relatedEntityType string,
	relatedEntityID string,
) *Transaction {
	return &Transaction{
		id:                id,
		sessionID:         sessionID,
		competitorID:      competitorID,
		period:            period,
		timestamp:         timestamp,
		transactionType:   transactionType,
		category:          category,
		amount:            amount,
		balanceBefore:     balanceBefore,
		balanceAfter:      balanceAfter,
		description:       description,
		relatedEntityType: relatedEntityType,
		relatedEntityID:   relatedEntityID,
	}
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	// Balance invariant: balance_after must equal balance_before + amount
	expected := t.balanceBefore.Add(t.amount)
	if !t.balanceAfter.Equal(expected) {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: t.balanceBefore,
			Amount:        t.amount,
			BalanceAfter:  t.balanceAfter,
			Expected:      expected,
		}
	}

	if t.transactionType == TransactionTypeExpense && t.amount.IsPositive() {
		return &ErrInvalidTransaction{Field: "amount", Reason: "expense amount must not be positive"}
	}

	return nil
}

// Getters (all fields are immutable)

func (t *Transaction) ID() TransactionID {
	return t.id
}

func (t *Transaction) SessionID() string {
	return t.sessionID
}

func (t *Transaction) CompetitorID() *uint {
	return t.competitorID
}

func (t *Transaction) Period() shared.Period {
	return t.period
}

func (t *Transaction) Timestamp() time.Time {
	return t.timestamp
}

func (t *Transaction) TransactionType() TransactionType {
	return t.transactionType
}

func (t *Transaction) Category() Category {
	return t.category
}

func (t *Transaction) Amount() decimal.Decimal {
	return t.amount
}

func (t *Transaction) BalanceBefore() decimal.Decimal {
	return t.balanceBefore
}

func (t *Transaction) BalanceAfter() decimal.Decimal {
	return t.balanceAfter
}

func (t *Transaction) Description() string {
	return t.description
}

func (t *Transaction) RelatedEntityType() string {
	return t.relatedEntityType
}

func (t *Transaction) RelatedEntityID() string {
	return t.relatedEntityID
}

// IsCompetitorEntry reports whether the entry belongs to an AI competitor
func (t *Transaction) IsCompetitorEntry() bool {
	return t.competitorID != nil
}

// String provides a human-readable representation
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, type=%s, category=%s, amount=%s, balance=%s->%s]",
		t.id.String(), t.transactionType, t.category, t.amount.StringFixed(2),
		t.balanceBefore.StringFixed(2), t.balanceAfter.StringFixed(2))
}
