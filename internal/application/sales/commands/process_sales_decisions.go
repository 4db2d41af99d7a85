package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/application/simulation/services"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// ProcessSalesDecisionsCommand clears the session's pending decisions right away, outside the
// month cadence, with price-ordered allocation against the simplified demand model
type ProcessSalesDecisionsCommand struct {
	SessionID string
}

// ProcessSalesDecisionsResponse summarizes the pass
type ProcessSalesDecisionsResponse struct {
	DecisionsProcessed int
	Segments           int
	UnitsSold          int
	Revenue            decimal.Decimal
	Balance            decimal.Decimal
}

// ProcessSalesDecisionsDeps groups the handler's collaborators
type ProcessSalesDecisionsDeps struct {
	UnitOfWork     shared.UnitOfWork
	Locker         session.Locker
	SessionRepo    session.Repository
	MarketRepo     market.MarketRepository
	CompetitorRepo competitor.Repository
	DecisionRepo   sales.DecisionRepository
	Segments       *services.SegmentProcessor
	Random         shared.RandomSource
}

// ProcessSalesDecisionsHandler handles the ProcessSalesDecisions command
type ProcessSalesDecisionsHandler struct {
	deps      ProcessSalesDecisionsDeps
	allocator market.Allocator
}

// NewProcessSalesDecisionsHandler creates a new handler
func NewProcessSalesDecisionsHandler(deps ProcessSalesDecisionsDeps) *ProcessSalesDecisionsHandler {
	return &ProcessSalesDecisionsHandler{
		deps:      deps,
		allocator: market.NewPriceOrderAllocator(deps.Random),
	}
}

// Handle executes the ProcessSalesDecisions command
func (h *ProcessSalesDecisionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ProcessSalesDecisionsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ProcessSalesDecisionsCommand")
	}

	if h.deps.Locker != nil {
		release, err := h.deps.Locker.Lock(ctx, cmd.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock session %s: %w", cmd.SessionID, err)
		}
		defer release()
	}

	var response *ProcessSalesDecisionsResponse
	err := h.deps.UnitOfWork.Do(ctx, func(ctx context.Context) error {
		var err error
		response, err = h.process(ctx, cmd.SessionID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process sales decisions: %w", err)
	}
	return response, nil
}

func (h *ProcessSalesDecisionsHandler) process(ctx context.Context, sessionID string) (*ProcessSalesDecisionsResponse, error) {
	sess, err := h.deps.SessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	pending, err := h.deps.DecisionRepo.ListPending(ctx, sess.ID, sess.Period)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending decisions: %w", err)
	}

	response := &ProcessSalesDecisionsResponse{Revenue: decimal.Zero, Balance: sess.Balance}
	if len(pending) == 0 {
		return response, nil
	}

	competitorList, err := h.deps.CompetitorRepo.ListBySession(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}
	competitors := make(map[uint]*competitor.Competitor, len(competitorList))
	for _, c := range competitorList {
		competitors[c.ID] = c
	}

	for _, key := range pendingKeys(sess, pending) {
		m, err := h.deps.MarketRepo.FindMarket(ctx, sess.ID, key.MarketID)
		if err != nil {
			return nil, fmt.Errorf("failed to load market %d: %w", key.MarketID, err)
		}
		bikeType, err := h.deps.MarketRepo.FindBikeType(ctx, sess.ID, key.BikeTypeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load bike type %d: %w", key.BikeTypeID, err)
		}

		competition := market.NewCompetition(key)
		competition.ApplyVolume(market.SimplifiedEstimate(m, bikeType, key.Segment, key.Period.Month))

		result, err := h.deps.Segments.Process(ctx, services.SegmentInput{
			Session:     sess,
			Market:      m,
			BikeType:    bikeType,
			Competition: competition,
			Allocator:   h.allocator,
			Decisions:   pending,
			Competitors: competitors,
		})
		if err != nil {
			return nil, err
		}

		response.Segments++
		response.UnitsSold += result.Execution.PlayerUnits
		response.Revenue = response.Revenue.Add(result.Execution.PlayerRevenue)
	}

	for _, d := range pending {
		if d.Processed {
			response.DecisionsProcessed++
		}
	}

	if err := h.deps.SessionRepo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	response.Balance = sess.Balance

	logging.LoggerFromContext(ctx).Log("INFO", "Sales decisions processed", map[string]interface{}{
		"session_id": sess.ID,
		"decisions":  response.DecisionsProcessed,
		"units_sold": response.UnitsSold,
		"revenue":    response.Revenue.StringFixed(2),
	})
	return response, nil
}

// pendingKeys lists each distinct key once, in a stable order
func pendingKeys(sess *session.Session, pending []*sales.Decision) []market.Key {
	seen := make(map[market.Key]bool)
	keys := make([]market.Key, 0)
	for _, d := range pending {
		key := d.Key(sess.Period)
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.MarketID != b.MarketID {
			return a.MarketID < b.MarketID
		}
		if a.BikeTypeID != b.BikeTypeID {
			return a.BikeTypeID < b.BikeTypeID
		}
		return a.Segment < b.Segment
	})
	return keys
}
