package competitor

import (
	"context"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// Repository stores competitors
type Repository interface {
	Save(ctx context.Context, c *Competitor) error
	FindByID(ctx context.Context, sessionID string, id uint) (*Competitor, error)
	ListBySession(ctx context.Context, sessionID string) ([]*Competitor, error)
}

// LotRepository stores production lots
type LotRepository interface {
	SaveLot(ctx context.Context, lot *ProductionLot) error
	FindLotByID(ctx context.Context, id uint) (*ProductionLot, error)
	// FindLot returns ErrLotNotFound when no lot exists for the key
	FindLot(ctx context.Context, competitorID, bikeTypeID uint, segment market.PriceSegment, period shared.Period) (*ProductionLot, error)
	// ListStocked returns every lot of the session with inventory left
	ListStocked(ctx context.Context, sessionID string) ([]*ProductionLot, error)
	// ListStockedFor narrows ListStocked to one bike type and segment
	ListStockedFor(ctx context.Context, sessionID string, bikeTypeID uint, segment market.PriceSegment) ([]*ProductionLot, error)
}

// SaleRepository stores competitor sale records
type SaleRepository interface {
	RecordSale(ctx context.Context, sale *Sale) error
	ListSales(ctx context.Context, sessionID string, key market.Key) ([]*Sale, error)
}
