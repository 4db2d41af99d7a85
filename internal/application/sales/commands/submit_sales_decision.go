package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
)

// SubmitSalesDecisionCommand records the player's intent to sell units in a market segment
// during the session's current month
type SubmitSalesDecisionCommand struct {
	SessionID    string
	MarketName   string
	BikeTypeName string
	Segment      string
	Quantity     int
	DesiredPrice decimal.Decimal
	// TransportCost overrides the market's home transport cost when set
	TransportCost *decimal.Decimal
}

// SubmitSalesDecisionResponse identifies the stored decision
type SubmitSalesDecisionResponse struct {
	DecisionID      uint
	Period          string
	TransportCost   decimal.Decimal
	ExpectedRevenue decimal.Decimal
}

// SubmitSalesDecisionHandler handles the SubmitSalesDecision command
type SubmitSalesDecisionHandler struct {
	sessionRepo  session.Repository
	marketRepo   market.MarketRepository
	decisionRepo sales.DecisionRepository
}

// NewSubmitSalesDecisionHandler creates a new handler
func NewSubmitSalesDecisionHandler(
	sessionRepo session.Repository,
	marketRepo market.MarketRepository,
	decisionRepo sales.DecisionRepository,
) *SubmitSalesDecisionHandler {
	return &SubmitSalesDecisionHandler{
		sessionRepo:  sessionRepo,
		marketRepo:   marketRepo,
		decisionRepo: decisionRepo,
	}
}

// Handle executes the SubmitSalesDecision command
func (h *SubmitSalesDecisionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SubmitSalesDecisionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SubmitSalesDecisionCommand")
	}

	sess, err := h.sessionRepo.FindByID(ctx, cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	m, err := h.marketRepo.FindMarketByName(ctx, sess.ID, cmd.MarketName)
	if err != nil {
		return nil, fmt.Errorf("failed to find market %q: %w", cmd.MarketName, err)
	}
	bikeType, err := h.marketRepo.FindBikeTypeByName(ctx, sess.ID, cmd.BikeTypeName)
	if err != nil {
		return nil, fmt.Errorf("failed to find bike type %q: %w", cmd.BikeTypeName, err)
	}
	segment, err := market.ParsePriceSegment(cmd.Segment)
	if err != nil {
		return nil, err
	}

	transport := m.TransportCostHome
	if cmd.TransportCost != nil {
		transport = *cmd.TransportCost
	}

	decision, err := sales.NewDecision(sess.ID, m.ID, bikeType.ID, segment, cmd.Quantity, cmd.DesiredPrice, transport, sess.Period)
	if err != nil {
		return nil, err
	}
	if err := h.decisionRepo.Save(ctx, decision); err != nil {
		return nil, fmt.Errorf("failed to save sales decision: %w", err)
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Sales decision submitted", map[string]interface{}{
		"session_id":  sess.ID,
		"decision_id": decision.ID,
		"market":      m.Name,
		"bike_type":   bikeType.Name,
		"segment":     string(segment),
		"quantity":    decision.Quantity,
		"price":       decision.DesiredPrice.StringFixed(2),
	})

	return &SubmitSalesDecisionResponse{
		DecisionID:      decision.ID,
		Period:          sess.Period.String(),
		TransportCost:   transport,
		ExpectedRevenue: decision.ExpectedRevenue(),
	}, nil
}
