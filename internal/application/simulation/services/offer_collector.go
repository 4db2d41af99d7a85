package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/inventory"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// OfferBook is the consistent snapshot of one key: every offer plus the records backing them
type OfferBook struct {
	Key       market.Key
	Offers    []market.Offer
	Decisions map[uint]*sales.Decision
	Bikes     map[uint]*inventory.ProducedBike
	Lots      map[uint]*competitor.ProductionLot
}

func newOfferBook(key market.Key) *OfferBook {
	return &OfferBook{
		Key:       key,
		Decisions: make(map[uint]*sales.Decision),
		Bikes:     make(map[uint]*inventory.ProducedBike),
		Lots:      make(map[uint]*competitor.ProductionLot),
	}
}

// PlayerOffers counts the player offers in the book
func (b *OfferBook) PlayerOffers() int {
	n := 0
	for _, o := range b.Offers {
		if o.Seller == market.SellerPlayer {
			n++
		}
	}
	return n
}

// OfferCollector builds the offer list of one market segment. It binds stock to offers
// but never changes inventory.
type OfferCollector struct {
	bikeRepo inventory.ProducedBikeRepository
	lotRepo  competitor.LotRepository
	random   shared.RandomSource
}

// NewOfferCollector creates a new offer collector
func NewOfferCollector(
	bikeRepo inventory.ProducedBikeRepository,
	lotRepo competitor.LotRepository,
	random shared.RandomSource,
) *OfferCollector {
	return &OfferCollector{bikeRepo: bikeRepo, lotRepo: lotRepo, random: random}
}

// Collect gathers player offers for the given pending decisions and competitor offers from
// every stocked lot of the key's bike type and segment
func (c *OfferCollector) Collect(
	ctx context.Context,
	key market.Key,
	m *market.Market,
	decisions []*sales.Decision,
	competitors map[uint]*competitor.Competitor,
) (*OfferBook, error) {
	book := newOfferBook(key)

	if err := c.collectPlayerOffers(ctx, book, decisions); err != nil {
		return nil, err
	}
	if err := c.collectCompetitorOffers(ctx, book, m, competitors); err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log("DEBUG", "Offers collected", map[string]interface{}{
		"market":            m.Name,
		"bike_type_id":      key.BikeTypeID,
		"segment":           string(key.Segment),
		"player_offers":     book.PlayerOffers(),
		"competitor_offers": len(book.Offers) - book.PlayerOffers(),
	})

	return book, nil
}

func (c *OfferCollector) collectPlayerOffers(ctx context.Context, book *OfferBook, decisions []*sales.Decision) error {
	key := book.Key
	quality := key.Segment.PlayerQualityFactor()
	var bound []uint

	for _, d := range decisions {
		if d.Processed || d.MarketID != key.MarketID || d.BikeTypeID != key.BikeTypeID || d.Segment != key.Segment {
			continue
		}
		book.Decisions[d.ID] = d

		want := d.Remaining()
		if want <= 0 {
			continue
		}
		bikes, err := c.bikeRepo.ListAvailable(ctx, key.SessionID, key.BikeTypeID, key.Segment, want, bound)
		if err != nil {
			return fmt.Errorf("failed to list available bikes for decision %d: %w", d.ID, err)
		}
		if len(bikes) < want {
			logging.LoggerFromContext(ctx).Log("WARNING", "Fewer bikes available than requested", map[string]interface{}{
				"decision_id": d.ID,
				"requested":   want,
				"available":   len(bikes),
			})
		}

		for _, bike := range bikes {
			book.Bikes[bike.ID] = bike
			bound = append(bound, bike.ID)
			book.Offers = append(book.Offers, market.NewPlayerOffer(
				d.ID, bike.ID, d.EffectivePrice(bike.AgePenalty()), quality, d.TransportCost,
			))
		}
		d.BindUnits(len(bikes))
	}
	return nil
}

func (c *OfferCollector) collectCompetitorOffers(
	ctx context.Context,
	book *OfferBook,
	m *market.Market,
	competitors map[uint]*competitor.Competitor,
) error {
	key := book.Key
	lots, err := c.lotRepo.ListStockedFor(ctx, key.SessionID, key.BikeTypeID, key.Segment)
	if err != nil {
		return fmt.Errorf("failed to list stocked lots: %w", err)
	}

	for _, lot := range lots {
		owner, ok := competitors[lot.CompetitorID]
		if !ok || !lot.HasInventory() {
			continue
		}

		// Never the whole stock in one pass unless only one unit is left
		tranche := c.random.IntRange(1, max(1, lot.QuantityInInventory/2+1))
		if tranche > lot.QuantityInInventory {
			tranche = lot.QuantityInInventory
		}

		book.Lots[lot.ID] = lot
		book.Offers = append(book.Offers, market.NewCompetitorOffer(
			owner.ID, lot.ID, tranche, lot.QuantityInInventory,
			c.competitorPrice(owner, lot, m), owner.OfferQuality(key.Segment),
		))
	}
	return nil
}

// competitorPrice is (cost × segment markup + foreign transport) × age penalty × strategy factor × ±5%
func (c *OfferCollector) competitorPrice(owner *competitor.Competitor, lot *competitor.ProductionLot, m *market.Market) decimal.Decimal {
	base := shared.ScaleMoney(lot.CostPerUnit, lot.Segment.CompetitorMarkup()).Add(m.TransportCostForeign)
	factor := lot.AgePenalty() * owner.Strategy.PriceAdjustmentFactor() * c.random.Uniform(0.95, 1.05)
	return shared.RoundMoney(shared.ScaleMoney(base, factor))
}
