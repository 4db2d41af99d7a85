package queries

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
)

const defaultLookbackMonths = 3

// GetRecentSalesResultsQuery lists processed decisions of the last few months
type GetRecentSalesResultsQuery struct {
	SessionID string
	// LookbackMonths defaults to one sales cycle
	LookbackMonths int
}

// SalesResultDTO is one processed decision
type SalesResultDTO struct {
	DecisionID    uint
	Period        string
	MarketID      uint
	BikeTypeID    uint
	Segment       string
	Quantity      int
	QuantitySold  int
	DesiredPrice  decimal.Decimal
	ActualRevenue decimal.Decimal
	SuccessRate   float64
	UnsoldReason  string
}

// GetRecentSalesResultsResponse lists results newest first
type GetRecentSalesResultsResponse struct {
	Since   string
	Results []*SalesResultDTO
}

// GetRecentSalesResultsHandler handles the query
type GetRecentSalesResultsHandler struct {
	sessionRepo  session.Repository
	decisionRepo sales.DecisionRepository
}

// NewGetRecentSalesResultsHandler creates a new handler
func NewGetRecentSalesResultsHandler(sessionRepo session.Repository, decisionRepo sales.DecisionRepository) *GetRecentSalesResultsHandler {
	return &GetRecentSalesResultsHandler{sessionRepo: sessionRepo, decisionRepo: decisionRepo}
}

// Handle executes the query
func (h *GetRecentSalesResultsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetRecentSalesResultsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetRecentSalesResultsQuery")
	}

	sess, err := h.sessionRepo.FindByID(ctx, query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	lookback := query.LookbackMonths
	if lookback <= 0 {
		lookback = defaultLookbackMonths
	}
	since := sess.Period.Minus(lookback)

	decisions, err := h.decisionRepo.ListProcessedSince(ctx, sess.ID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list processed decisions: %w", err)
	}

	results := make([]*SalesResultDTO, len(decisions))
	for i, d := range decisions {
		results[i] = &SalesResultDTO{
			DecisionID:    d.ID,
			Period:        d.Period.String(),
			MarketID:      d.MarketID,
			BikeTypeID:    d.BikeTypeID,
			Segment:       string(d.Segment),
			Quantity:      d.Quantity,
			QuantitySold:  d.QuantitySold,
			DesiredPrice:  d.DesiredPrice,
			ActualRevenue: d.ActualRevenue,
			SuccessRate:   d.SuccessRate(),
			UnsoldReason:  string(d.UnsoldReason),
		}
	}

	return &GetRecentSalesResultsResponse{Since: since.String(), Results: results}, nil
}
