package ledger

import (
	"context"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	// Create persists a new transaction
	Create(ctx context.Context, transaction *Transaction) error

	// FindByID retrieves a transaction by its ID
	FindByID(ctx context.Context, id TransactionID, sessionID string) (*Transaction, error)

	// FindBySession retrieves transactions for a session with optional filtering
	FindBySession(ctx context.Context, sessionID string, opts QueryOptions) ([]*Transaction, error)

	// CountBySession returns the count of transactions matching the criteria
	CountBySession(ctx context.Context, sessionID string, opts QueryOptions) (int, error)
}

// QueryOptions defines filtering and pagination options for transaction queries
type QueryOptions struct {
	// Period filtering
	Period *shared.Period

	// Category filtering
	Category *Category

	// Transaction type filtering
	TransactionType *TransactionType

	// Owner filtering: only player entries, only competitor entries, or both
	PlayerOnly bool

	// Pagination
	Limit  int
	Offset int

	// Sorting
	OrderBy string // "timestamp ASC" or "timestamp DESC" (default DESC)
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:   50,
		Offset:  0,
		OrderBy: "timestamp DESC",
	}
}
