package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
)

// GetPendingDecisionsSummaryQuery summarizes the decisions waiting for the next sales cycle
type GetPendingDecisionsSummaryQuery struct {
	SessionID string
}

// MarketPendingSummary aggregates pending decisions of one market
type MarketPendingSummary struct {
	Market          string
	Decisions       int
	Quantity        int
	ExpectedRevenue decimal.Decimal
}

// GetPendingDecisionsSummaryResponse is the pending summary
type GetPendingDecisionsSummaryResponse struct {
	TotalDecisions  int
	TotalQuantity   int
	ExpectedRevenue decimal.Decimal
	Markets         []*MarketPendingSummary
}

// GetPendingDecisionsSummaryHandler handles the query
type GetPendingDecisionsSummaryHandler struct {
	sessionRepo  session.Repository
	marketRepo   market.MarketRepository
	decisionRepo sales.DecisionRepository
}

// NewGetPendingDecisionsSummaryHandler creates a new handler
func NewGetPendingDecisionsSummaryHandler(
	sessionRepo session.Repository,
	marketRepo market.MarketRepository,
	decisionRepo sales.DecisionRepository,
) *GetPendingDecisionsSummaryHandler {
	return &GetPendingDecisionsSummaryHandler{
		sessionRepo:  sessionRepo,
		marketRepo:   marketRepo,
		decisionRepo: decisionRepo,
	}
}

// Handle executes the query
func (h *GetPendingDecisionsSummaryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPendingDecisionsSummaryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPendingDecisionsSummaryQuery")
	}

	sess, err := h.sessionRepo.FindByID(ctx, query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	pending, err := h.decisionRepo.ListPending(ctx, sess.ID, sess.Period)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending decisions: %w", err)
	}
	markets, err := h.marketRepo.ListMarkets(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}
	names := make(map[uint]string, len(markets))
	for _, m := range markets {
		names[m.ID] = m.Name
	}

	response := &GetPendingDecisionsSummaryResponse{ExpectedRevenue: decimal.Zero}
	byMarket := make(map[uint]*MarketPendingSummary)
	for _, d := range pending {
		summary, ok := byMarket[d.MarketID]
		if !ok {
			summary = &MarketPendingSummary{Market: names[d.MarketID], ExpectedRevenue: decimal.Zero}
			byMarket[d.MarketID] = summary
		}
		expected := d.ExpectedRevenue()
		summary.Decisions++
		summary.Quantity += d.Quantity
		summary.ExpectedRevenue = summary.ExpectedRevenue.Add(expected)

		response.TotalDecisions++
		response.TotalQuantity += d.Quantity
		response.ExpectedRevenue = response.ExpectedRevenue.Add(expected)
	}

	for _, summary := range byMarket {
		response.Markets = append(response.Markets, summary)
	}
	sort.Slice(response.Markets, func(i, j int) bool {
		return response.Markets[i].Market < response.Markets[j].Market
	})
	return response, nil
}
