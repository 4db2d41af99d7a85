package market

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// MarketRepository stores a session's markets and bike types
type MarketRepository interface {
	SaveMarket(ctx context.Context, m *Market) error
	FindMarket(ctx context.Context, sessionID string, id uint) (*Market, error)
	FindMarketByName(ctx context.Context, sessionID, name string) (*Market, error)
	ListMarkets(ctx context.Context, sessionID string) ([]*Market, error)

	SaveBikeType(ctx context.Context, b *BikeType) error
	FindBikeType(ctx context.Context, sessionID string, id uint) (*BikeType, error)
	FindBikeTypeByName(ctx context.Context, sessionID, name string) (*BikeType, error)
	ListBikeTypes(ctx context.Context, sessionID string) ([]*BikeType, error)
}

// DemandConfigRepository exposes optional demand configuration.
// A nil result means "not configured" and is never an error.
type DemandConfigRepository interface {
	DemandPercentage(ctx context.Context, sessionID string, marketID, bikeTypeID uint) (*float64, error)
	PriceSensitivity(ctx context.Context, sessionID string, marketID uint, segment PriceSegment) (*float64, error)
	ConfiguredPrice(ctx context.Context, sessionID string, bikeTypeID uint, segment PriceSegment) (*decimal.Decimal, error)

	SetDemandPercentage(ctx context.Context, sessionID string, marketID, bikeTypeID uint, pct float64) error
	SetPriceSensitivity(ctx context.Context, sessionID string, marketID uint, segment PriceSegment, pct float64) error
	SetConfiguredPrice(ctx context.Context, sessionID string, bikeTypeID uint, segment PriceSegment, price decimal.Decimal) error
}

// CompetitionRepository persists competition snapshots; writes always upsert by Key
type CompetitionRepository interface {
	Upsert(ctx context.Context, c *Competition) error
	Find(ctx context.Context, key Key) (*Competition, error)
	ListForPeriod(ctx context.Context, sessionID string, period shared.Period) ([]*Competition, error)
}

// BusinessStrategyProvider reports marketing and sustainability effects for a session
type BusinessStrategyProvider interface {
	Effects(ctx context.Context, sessionID string) (BusinessEffects, error)
}

// BusinessStrategyStore is the writable side of the business-strategy effects
type BusinessStrategyStore interface {
	BusinessStrategyProvider
	SetEffects(ctx context.Context, sessionID string, effects BusinessEffects) error
}
