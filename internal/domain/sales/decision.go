package sales

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// Decision is a player's pending commitment to sell units of a market segment.
// It moves from pending to processed exactly once.
type Decision struct {
	ID            uint
	SessionID     string
	MarketID      uint
	BikeTypeID    uint
	Segment       market.PriceSegment
	Quantity      int
	DesiredPrice  decimal.Decimal
	TransportCost decimal.Decimal
	Period        shared.Period

	Processed     bool
	QuantityBound int
	QuantitySold  int
	ActualRevenue decimal.Decimal
	UnsoldReason  UnsoldReason
	CreatedAt     time.Time
}

// NewDecision creates a pending decision
func NewDecision(
	sessionID string,
	marketID, bikeTypeID uint,
	segment market.PriceSegment,
	quantity int,
	desiredPrice, transportCost decimal.Decimal,
	period shared.Period,
) (*Decision, error) {
	if quantity <= 0 {
		return nil, &ErrInvalidDecision{Field: "quantity", Reason: fmt.Sprintf("must be positive, got %d", quantity)}
	}
	if !desiredPrice.IsPositive() {
		return nil, &ErrInvalidDecision{Field: "desired_price", Reason: "must be positive"}
	}
	if transportCost.IsNegative() {
		return nil, &ErrInvalidDecision{Field: "transport_cost", Reason: "must be non-negative"}
	}
	if !segment.IsValid() {
		return nil, &ErrInvalidDecision{Field: "segment", Reason: fmt.Sprintf("unknown segment %q", segment)}
	}
	return &Decision{
		SessionID:     sessionID,
		MarketID:      marketID,
		BikeTypeID:    bikeTypeID,
		Segment:       segment,
		Quantity:      quantity,
		DesiredPrice:  desiredPrice,
		TransportCost: transportCost,
		Period:        period,
		ActualRevenue: decimal.Zero,
	}, nil
}

// Key is the market segment this decision sells into during period
func (d *Decision) Key(period shared.Period) market.Key {
	return market.Key{
		SessionID:  d.SessionID,
		MarketID:   d.MarketID,
		BikeTypeID: d.BikeTypeID,
		Segment:    d.Segment,
		Period:     period,
	}
}

// Remaining is the number of units still to bind
func (d *Decision) Remaining() int {
	if d.QuantityBound >= d.Quantity {
		return 0
	}
	return d.Quantity - d.QuantityBound
}

// BindUnits records units of stock attached to offers for this decision
func (d *Decision) BindUnits(n int) {
	d.QuantityBound += n
}

// EffectivePrice is the desired price after the age penalty of a bound unit
func (d *Decision) EffectivePrice(agePenalty float64) decimal.Decimal {
	return shared.RoundMoney(shared.ScaleMoney(d.DesiredPrice, agePenalty))
}

// RecordSale books one sold unit. The first unit of the decision carries the whole
// shipment transport cost; later units carry none.
func (d *Decision) RecordSale(price decimal.Decimal) (transport, revenue decimal.Decimal, err error) {
	if d.Processed {
		return decimal.Zero, decimal.Zero, shared.NewInvariantViolation("sales_decision", d.ID, "sale recorded on processed decision")
	}
	if d.QuantitySold >= d.Quantity {
		return decimal.Zero, decimal.Zero, shared.NewInvariantViolation("sales_decision", d.ID,
			fmt.Sprintf("selling beyond requested quantity %d", d.Quantity))
	}

	transport = decimal.Zero
	if d.QuantitySold == 0 {
		transport = d.TransportCost
	}
	d.QuantitySold++
	revenue = price.Sub(transport)
	d.ActualRevenue = d.ActualRevenue.Add(revenue)
	return transport, revenue, nil
}

// Finalize marks the decision processed and derives the unsold reason. It may run only once.
func (d *Decision) Finalize() error {
	if d.Processed {
		return shared.NewInvariantViolation("sales_decision", d.ID, "already processed")
	}
	d.Processed = true
	d.UnsoldReason = d.unsoldReason()
	return nil
}

func (d *Decision) unsoldReason() UnsoldReason {
	if d.QuantitySold >= d.Quantity {
		return ReasonNone
	}
	if d.QuantitySold >= d.QuantityBound {
		return ReasonInsufficientInventory
	}
	if d.QuantitySold == 0 {
		return ReasonMarketOversaturated
	}
	return ReasonPartiallySoldOversaturated
}

// ExpectedRevenue is the revenue if every unit sells at the desired price
func (d *Decision) ExpectedRevenue() decimal.Decimal {
	return d.DesiredPrice.Sub(d.TransportCost).Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// SuccessRate is the sold share of the requested quantity in percent
func (d *Decision) SuccessRate() float64 {
	if d.Quantity == 0 {
		return 0
	}
	return float64(d.QuantitySold) / float64(d.Quantity) * 100
}
