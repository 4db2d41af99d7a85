package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// TransactionID identifies a ledger entry
type TransactionID struct {
	value string
}

// NewTransactionID generates a fresh identifier
func NewTransactionID() TransactionID {
	return TransactionID{value: uuid.New().String()}
}

// ParseTransactionID validates a stored identifier
func ParseTransactionID(id string) (TransactionID, error) {
	if id == "" {
		return TransactionID{}, fmt.Errorf("transaction_id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return TransactionID{}, fmt.Errorf("invalid transaction_id format: %w", err)
	}
	return TransactionID{value: id}, nil
}

func (t TransactionID) String() string {
	return t.value
}

func (t TransactionID) Equals(other TransactionID) bool {
	return t.value == other.value
}

func (t TransactionID) IsZero() bool {
	return t.value == ""
}
