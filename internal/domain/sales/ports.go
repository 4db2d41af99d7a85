package sales

import (
	"context"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// DecisionRepository stores player sales decisions
type DecisionRepository interface {
	Save(ctx context.Context, d *Decision) error
	FindByID(ctx context.Context, id uint) (*Decision, error)
	// ListPending returns unprocessed decisions made in or before upTo, oldest first
	ListPending(ctx context.Context, sessionID string, upTo shared.Period) ([]*Decision, error)
	// ListProcessedSince returns processed decisions made in or after since, newest first
	ListProcessedSince(ctx context.Context, sessionID string, since shared.Period) ([]*Decision, error)
}

// OrderRepository stores sold player bikes
type OrderRepository interface {
	Record(ctx context.Context, o *Order) error
	ListForKey(ctx context.Context, key market.Key) ([]*Order, error)
}
