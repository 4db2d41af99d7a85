package market

import "github.com/shopspring/decimal"

// SellerKind identifies who stands behind an offer
type SellerKind string

const (
	SellerPlayer     SellerKind = "player"
	SellerCompetitor SellerKind = "competitor"
)

// Offer is an ephemeral sell offer for one market segment key.
// Each offer is backed by exactly one record: a player unit or a competitor lot.
type Offer struct {
	Seller        SellerKind
	Quantity      int
	UnitPrice     decimal.Decimal
	QualityFactor float64

	// Backing is the inventory actually present behind the offer
	Backing int

	// Player backing
	DecisionID    uint
	BikeID        uint
	TransportCost decimal.Decimal

	// Competitor backing
	CompetitorID uint
	LotID        uint
}

// NewPlayerOffer creates a single-unit offer bound to one produced bike
func NewPlayerOffer(decisionID, bikeID uint, price decimal.Decimal, quality float64, transport decimal.Decimal) Offer {
	return Offer{
		Seller:        SellerPlayer,
		Quantity:      1,
		UnitPrice:     price,
		QualityFactor: quality,
		Backing:       1,
		DecisionID:    decisionID,
		BikeID:        bikeID,
		TransportCost: transport,
	}
}

// NewCompetitorOffer creates a tranche offer drawn from one production lot
func NewCompetitorOffer(competitorID, lotID uint, quantity, inventory int, price decimal.Decimal, quality float64) Offer {
	return Offer{
		Seller:        SellerCompetitor,
		Quantity:      quantity,
		UnitPrice:     price,
		QualityFactor: quality,
		Backing:       inventory,
		CompetitorID:  competitorID,
		LotID:         lotID,
	}
}

// Sellable is the most the offer can ever be allocated
func (o Offer) Sellable() int {
	return maxInt(0, minInt(o.Quantity, o.Backing))
}

// Competitiveness ranks offers: cheaper and higher quality both score higher
func (o Offer) Competitiveness() float64 {
	price := o.UnitPrice.InexactFloat64()
	if price < 1 {
		price = 1
	}
	return 1000.0/price + o.QualityFactor*100.0
}

// Allocation is the outcome for one offer
type Allocation struct {
	Offer         Offer
	Quantity      int
	DemandAtPrice int
}

// TotalAllocated sums allocated quantities
func TotalAllocated(allocations []Allocation) int {
	total := 0
	for _, a := range allocations {
		total += a.Quantity
	}
	return total
}
