package sales

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// Order records one sold player bike
type Order struct {
	ID            uint
	SessionID     string
	MarketID      uint
	BikeTypeID    uint
	Segment       market.PriceSegment
	BikeID        uint
	DecisionID    uint
	Period        shared.Period
	SalePrice     decimal.Decimal
	TransportCost decimal.Decimal
}
