package inventory

import (
	"context"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
)

// ProducedBikeRepository stores player-owned bikes
type ProducedBikeRepository interface {
	Save(ctx context.Context, bike *ProducedBike) error
	SaveAll(ctx context.Context, bikes []*ProducedBike) error
	FindByID(ctx context.Context, id uint) (*ProducedBike, error)
	// ListUnsold returns every unsold bike of the session, oldest first
	ListUnsold(ctx context.Context, sessionID string) ([]*ProducedBike, error)
	// ListAvailable returns up to limit unsold bikes of a type and segment, oldest first.
	// excludeIDs skips bikes already bound to another offer in the same pass.
	ListAvailable(ctx context.Context, sessionID string, bikeTypeID uint, segment market.PriceSegment, limit int, excludeIDs []uint) ([]*ProducedBike, error)
}
