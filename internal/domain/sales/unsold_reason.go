package sales

// UnsoldReason explains why a decision did not sell every requested unit
type UnsoldReason string

const (
	ReasonNone UnsoldReason = ""

	// ReasonMarketOversaturated: units were offered but demand absorbed none of them
	ReasonMarketOversaturated UnsoldReason = "market_oversaturated"

	// ReasonPartiallySoldOversaturated: demand absorbed only part of the offered units
	ReasonPartiallySoldOversaturated UnsoldReason = "partially_sold_market_oversaturated"

	// ReasonInsufficientInventory: every offered unit sold, but fewer units were in stock than requested
	ReasonInsufficientInventory UnsoldReason = "insufficient_inventory"
)

// IsDemandCapped reports whether the market, not the warehouse, limited the sale
func (r UnsoldReason) IsDemandCapped() bool {
	return r == ReasonMarketOversaturated || r == ReasonPartiallySoldOversaturated
}
