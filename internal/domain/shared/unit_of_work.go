package shared

import "context"

// UnitOfWork runs fn atomically. Repositories called with the ctx passed to fn
// join the same transaction; any error rolls every write back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
