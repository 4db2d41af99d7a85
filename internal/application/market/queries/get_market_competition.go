package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// GetMarketCompetitionQuery reports who sold what in one market segment.
// Period defaults to the session's current month.
type GetMarketCompetitionQuery struct {
	SessionID    string
	MarketName   string
	BikeTypeName string
	Segment      string
	Period       *shared.Period
}

// CompetitorSaleDTO is one competitor's sales in the segment
type CompetitorSaleDTO struct {
	Competitor      string
	QuantityOffered int
	QuantitySold    int
	SalePrice       decimal.Decimal
	TotalRevenue    decimal.Decimal
}

// GetMarketCompetitionResponse combines the competition snapshot with observed sales
type GetMarketCompetitionResponse struct {
	Period          string
	Market          string
	BikeType        string
	Segment         string
	HasSnapshot     bool
	EstimatedDemand int
	MaximumVolume   int
	TotalSupply     int
	SalesVolume     int
	SaturationLevel float64
	PricePressure   float64
	AveragePrice    decimal.Decimal
	OptimalPrice    decimal.Decimal

	CompetitorSales        []*CompetitorSaleDTO
	PlayerUnitsSold        int
	PlayerRevenue          decimal.Decimal
	PlayerMarketShare      float64
	AverageCompetitorPrice decimal.Decimal
}

// GetMarketCompetitionHandler handles the query
type GetMarketCompetitionHandler struct {
	sessionRepo     session.Repository
	marketRepo      market.MarketRepository
	competitionRepo market.CompetitionRepository
	competitorRepo  competitor.Repository
	saleRepo        competitor.SaleRepository
	orderRepo       sales.OrderRepository
}

// NewGetMarketCompetitionHandler creates a new handler
func NewGetMarketCompetitionHandler(
	sessionRepo session.Repository,
	marketRepo market.MarketRepository,
	competitionRepo market.CompetitionRepository,
	competitorRepo competitor.Repository,
	saleRepo competitor.SaleRepository,
	orderRepo sales.OrderRepository,
) *GetMarketCompetitionHandler {
	return &GetMarketCompetitionHandler{
		sessionRepo:     sessionRepo,
		marketRepo:      marketRepo,
		competitionRepo: competitionRepo,
		competitorRepo:  competitorRepo,
		saleRepo:        saleRepo,
		orderRepo:       orderRepo,
	}
}

// Handle executes the query
func (h *GetMarketCompetitionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetMarketCompetitionQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetMarketCompetitionQuery")
	}

	sess, err := h.sessionRepo.FindByID(ctx, query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	m, err := h.marketRepo.FindMarketByName(ctx, sess.ID, query.MarketName)
	if err != nil {
		return nil, fmt.Errorf("failed to find market %q: %w", query.MarketName, err)
	}
	bikeType, err := h.marketRepo.FindBikeTypeByName(ctx, sess.ID, query.BikeTypeName)
	if err != nil {
		return nil, fmt.Errorf("failed to find bike type %q: %w", query.BikeTypeName, err)
	}
	segment, err := market.ParsePriceSegment(query.Segment)
	if err != nil {
		return nil, err
	}

	period := sess.Period
	if query.Period != nil {
		period = *query.Period
	}
	key := market.Key{SessionID: sess.ID, MarketID: m.ID, BikeTypeID: bikeType.ID, Segment: segment, Period: period}

	response := &GetMarketCompetitionResponse{
		Period:                 period.String(),
		Market:                 m.Name,
		BikeType:               bikeType.Name,
		Segment:                string(segment),
		AveragePrice:           decimal.Zero,
		OptimalPrice:           decimal.Zero,
		PlayerRevenue:          decimal.Zero,
		AverageCompetitorPrice: decimal.Zero,
	}

	competition, err := h.competitionRepo.Find(ctx, key)
	switch {
	case err == nil:
		response.HasSnapshot = true
		response.EstimatedDemand = competition.EstimatedDemand
		response.MaximumVolume = competition.MaximumVolume
		response.TotalSupply = competition.TotalSupply
		response.SalesVolume = competition.ActualSalesVolume
		response.SaturationLevel = competition.SaturationLevel
		response.PricePressure = competition.PricePressure
		response.AveragePrice = competition.AveragePrice
		response.OptimalPrice = competition.OptimalPrice
	case errors.Is(err, market.ErrCompetitionNotFound):
	default:
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}

	if err := h.fillCompetitorSales(ctx, response, key); err != nil {
		return nil, err
	}

	orders, err := h.orderRepo.ListForKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list player orders: %w", err)
	}
	for _, o := range orders {
		response.PlayerUnitsSold++
		response.PlayerRevenue = response.PlayerRevenue.Add(o.SalePrice.Sub(o.TransportCost))
	}

	competitorUnits := 0
	for _, s := range response.CompetitorSales {
		competitorUnits += s.QuantitySold
	}
	if total := competitorUnits + response.PlayerUnitsSold; total > 0 {
		response.PlayerMarketShare = float64(response.PlayerUnitsSold) / float64(total) * 100
	}

	return response, nil
}

func (h *GetMarketCompetitionHandler) fillCompetitorSales(ctx context.Context, response *GetMarketCompetitionResponse, key market.Key) error {
	salesList, err := h.saleRepo.ListSales(ctx, key.SessionID, key)
	if err != nil {
		return fmt.Errorf("failed to list competitor sales: %w", err)
	}
	if len(salesList) == 0 {
		return nil
	}

	competitors, err := h.competitorRepo.ListBySession(ctx, key.SessionID)
	if err != nil {
		return fmt.Errorf("failed to list competitors: %w", err)
	}
	names := make(map[uint]string, len(competitors))
	for _, c := range competitors {
		names[c.ID] = c.Name
	}

	priceSum := decimal.Zero
	for _, s := range salesList {
		response.CompetitorSales = append(response.CompetitorSales, &CompetitorSaleDTO{
			Competitor:      names[s.CompetitorID],
			QuantityOffered: s.QuantityOffered,
			QuantitySold:    s.QuantitySold,
			SalePrice:       s.SalePrice,
			TotalRevenue:    s.TotalRevenue,
		})
		priceSum = priceSum.Add(s.SalePrice)
	}
	response.AverageCompetitorPrice = shared.RoundMoney(priceSum.Div(decimal.NewFromInt(int64(len(salesList)))))
	return nil
}
