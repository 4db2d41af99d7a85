package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/andrescamacho/bikesim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/application/simulation/services"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

var tracer = otel.Tracer("bikesim/simulation")

// ProcessMonthCommand simulates the session's current month and advances its clock
type ProcessMonthCommand struct {
	SessionID string
}

// ProcessMonthResponse summarizes one simulated month
type ProcessMonthResponse struct {
	Processed          shared.Period
	Next               shared.Period
	SalesMonth         bool
	Aging              *services.AgingResult
	Production         *services.ProductionResult
	Liquidation        *services.LiquidationResult
	Segments           int
	DecisionsProcessed int
	PlayerUnitsSold    int
	PlayerRevenue      decimal.Decimal
	CompetitorUnits    int
	Balance            decimal.Decimal
}

// ProcessMonthDeps groups the collaborators of the month orchestrator
type ProcessMonthDeps struct {
	UnitOfWork     shared.UnitOfWork
	Locker         session.Locker
	SessionRepo    session.Repository
	MarketRepo     market.MarketRepository
	CompetitorRepo competitor.Repository
	DecisionRepo   sales.DecisionRepository
	Aging          *services.InventoryAgingService
	Planner        *services.ProductionPlanner
	Liquidation    *services.LiquidationService
	Volume         *services.VolumeEngine
	Segments       *services.SegmentProcessor
	Allocator      market.Allocator
	// SalesCycleMonths is the sales cadence; 3 clears the market in March, June, September and December
	SalesCycleMonths int
}

// ProcessMonthHandler is the period orchestrator. One month of one session runs inside a
// single unit of work: aging, production, liquidation and, on sales months, every market segment.
type ProcessMonthHandler struct {
	deps ProcessMonthDeps
}

// NewProcessMonthHandler creates a new handler
func NewProcessMonthHandler(deps ProcessMonthDeps) *ProcessMonthHandler {
	if deps.SalesCycleMonths < 1 {
		deps.SalesCycleMonths = 3
	}
	return &ProcessMonthHandler{deps: deps}
}

// Handle executes the ProcessMonth command
func (h *ProcessMonthHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ProcessMonthCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ProcessMonthCommand")
	}
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	if h.deps.Locker != nil {
		release, err := h.deps.Locker.Lock(ctx, cmd.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock session %s: %w", cmd.SessionID, err)
		}
		defer release()
	}

	ctx, span := tracer.Start(ctx, "simulation.process_month")
	span.SetAttributes(attribute.String("session.id", cmd.SessionID))
	defer span.End()

	start := time.Now()
	var response *ProcessMonthResponse
	err := h.deps.UnitOfWork.Do(ctx, func(ctx context.Context) error {
		var err error
		response, err = h.processMonth(ctx, cmd.SessionID)
		return err
	})

	salesMonth := response != nil && response.SalesMonth
	metrics.RecordMonthProcessed(salesMonth, time.Since(start).Seconds(), err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to process month: %w", err)
	}

	span.SetAttributes(
		attribute.String("period", response.Processed.String()),
		attribute.Bool("sales_month", response.SalesMonth),
	)
	return response, nil
}

func (h *ProcessMonthHandler) processMonth(ctx context.Context, sessionID string) (*ProcessMonthResponse, error) {
	logger := logging.LoggerFromContext(ctx)

	sess, err := h.deps.SessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	period := sess.Period

	response := &ProcessMonthResponse{
		Processed:     period,
		SalesMonth:    period.IsSalesMonth(h.deps.SalesCycleMonths),
		PlayerRevenue: decimal.Zero,
	}

	logger.Log("INFO", "Processing month", map[string]interface{}{
		"session_id":  sessionID,
		"period":      period.String(),
		"sales_month": response.SalesMonth,
	})

	if response.Aging, err = h.deps.Aging.UpdateAges(ctx, sessionID, period); err != nil {
		return nil, err
	}
	if response.Production, err = h.deps.Planner.PlanAll(ctx, sessionID, period); err != nil {
		return nil, err
	}
	if response.Liquidation, err = h.deps.Liquidation.Run(ctx, sessionID, period); err != nil {
		return nil, err
	}

	if response.SalesMonth {
		if err := h.runSalesCycle(ctx, sess, response); err != nil {
			return nil, err
		}
	}

	response.Next = sess.AdvanceMonth()
	response.Balance = sess.Balance
	if err := h.deps.SessionRepo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	logger.Log("INFO", "Month processed", map[string]interface{}{
		"session_id":        sessionID,
		"period":            period.String(),
		"next":              response.Next.String(),
		"units_produced":    response.Production.UnitsProduced,
		"units_liquidated":  response.Liquidation.UnitsLiquidated,
		"player_units_sold": response.PlayerUnitsSold,
		"segments":          response.Segments,
	})

	return response, nil
}

// runSalesCycle processes every market × bike type × segment. Keys do not read each
// other's writes, so the iteration order carries no meaning.
func (h *ProcessMonthHandler) runSalesCycle(ctx context.Context, sess *session.Session, response *ProcessMonthResponse) error {
	markets, err := h.deps.MarketRepo.ListMarkets(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to list markets: %w", err)
	}
	bikeTypes, err := h.deps.MarketRepo.ListBikeTypes(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to list bike types: %w", err)
	}
	pending, err := h.deps.DecisionRepo.ListPending(ctx, sess.ID, sess.Period)
	if err != nil {
		return fmt.Errorf("failed to list pending decisions: %w", err)
	}
	competitorList, err := h.deps.CompetitorRepo.ListBySession(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to list competitors: %w", err)
	}
	competitors := make(map[uint]*competitor.Competitor, len(competitorList))
	for _, c := range competitorList {
		competitors[c.ID] = c
	}

	effects := h.deps.Volume.Effects(ctx, sess.ID)

	for _, m := range markets {
		for _, bt := range bikeTypes {
			for _, segment := range market.AllSegments {
				key := market.Key{
					SessionID:  sess.ID,
					MarketID:   m.ID,
					BikeTypeID: bt.ID,
					Segment:    segment,
					Period:     sess.Period,
				}

				competition, err := h.deps.Volume.Estimate(ctx, key, m, bt, effects)
				if err != nil {
					return fmt.Errorf("failed to estimate %s/%s/%s: %w", m.Name, bt.Name, segment, err)
				}

				result, err := h.deps.Segments.Process(ctx, services.SegmentInput{
					Session:        sess,
					Market:         m,
					BikeType:       bt,
					Competition:    competition,
					Allocator:      h.deps.Allocator,
					Decisions:      pending,
					Competitors:    competitors,
					PersistOutcome: true,
				})
				if err != nil {
					return fmt.Errorf("failed to process %s/%s/%s: %w", m.Name, bt.Name, segment, err)
				}

				response.Segments++
				response.PlayerUnitsSold += result.Execution.PlayerUnits
				response.PlayerRevenue = response.PlayerRevenue.Add(result.Execution.PlayerRevenue)
				response.CompetitorUnits += result.Execution.CompetitorUnits
			}
		}
	}

	for _, d := range pending {
		if d.Processed {
			response.DecisionsProcessed++
		}
	}
	return nil
}
