package competitor

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// Sale aggregates one allocation of a competitor tranche
type Sale struct {
	ID              uint
	CompetitorID    uint
	MarketID        uint
	BikeTypeID      uint
	Segment         market.PriceSegment
	Period          shared.Period
	QuantityOffered int
	QuantitySold    int
	SalePrice       decimal.Decimal
	TotalRevenue    decimal.Decimal
}

// NewSale records sold units of an offered tranche at a unit price
func NewSale(competitorID, marketID, bikeTypeID uint, segment market.PriceSegment, period shared.Period, offered, sold int, price decimal.Decimal) *Sale {
	return &Sale{
		CompetitorID:    competitorID,
		MarketID:        marketID,
		BikeTypeID:      bikeTypeID,
		Segment:         segment,
		Period:          period,
		QuantityOffered: offered,
		QuantitySold:    sold,
		SalePrice:       shared.RoundMoney(price),
		TotalRevenue:    shared.RoundMoney(price.Mul(decimal.NewFromInt(int64(sold)))),
	}
}
