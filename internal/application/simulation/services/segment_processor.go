package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/andrescamacho/bikesim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
)

// SegmentInput is everything one market segment pass needs
type SegmentInput struct {
	Session     *session.Session
	Market      *market.Market
	BikeType    *market.BikeType
	Competition *market.Competition
	Allocator   market.Allocator
	Decisions   []*sales.Decision
	Competitors map[uint]*competitor.Competitor

	// PersistOutcome upserts the competition record with the observed supply and sales
	PersistOutcome bool
}

// SegmentResult reports what happened in one market segment
type SegmentResult struct {
	Key         market.Key
	Offers      int
	Allocated   int
	Execution   *ExecutionResult
	Competition *market.Competition
}

// SegmentProcessor runs collect, allocate, execute and finalize for one key, strictly in that order
type SegmentProcessor struct {
	collector       *OfferCollector
	executor        *SaleExecutor
	decisionRepo    sales.DecisionRepository
	competitionRepo market.CompetitionRepository
}

// NewSegmentProcessor creates a new segment processor
func NewSegmentProcessor(
	collector *OfferCollector,
	executor *SaleExecutor,
	decisionRepo sales.DecisionRepository,
	competitionRepo market.CompetitionRepository,
) *SegmentProcessor {
	return &SegmentProcessor{
		collector:       collector,
		executor:        executor,
		decisionRepo:    decisionRepo,
		competitionRepo: competitionRepo,
	}
}

// Process allocates the key's demand across player and competitor offers and books the result
func (p *SegmentProcessor) Process(ctx context.Context, in SegmentInput) (*SegmentResult, error) {
	key := in.Competition.Key
	ctx, span := tracer.Start(ctx, "market.process_segment")
	span.SetAttributes(
		sessionAttr(key.SessionID),
		attribute.String("market", in.Market.Name),
		attribute.String("bike_type", in.BikeType.Name),
		attribute.String("segment", string(key.Segment)),
		attribute.String("allocator", string(in.Allocator.Strategy())),
	)
	var err error
	defer func() { endSpan(span, err) }()

	book, err := p.collector.Collect(ctx, key, in.Market, in.Decisions, in.Competitors)
	if err != nil {
		return nil, fmt.Errorf("failed to collect offers: %w", err)
	}

	allocations := in.Allocator.Allocate(market.AllocationRequest{
		Competition:            in.Competition,
		MarketElasticityFactor: in.Market.ElasticityFactor,
		Offers:                 book.Offers,
	})

	execution, err := p.executor.Execute(ctx, in.Session, in.Market, book, allocations, in.Competitors)
	if err != nil {
		return nil, fmt.Errorf("failed to execute sales: %w", err)
	}

	if err = p.finalizeDecisions(ctx, book); err != nil {
		return nil, err
	}

	in.Competition.RecordOutcome(book.Offers, allocations)
	if in.PersistOutcome {
		if err = p.competitionRepo.Upsert(ctx, in.Competition); err != nil {
			return nil, fmt.Errorf("failed to upsert competition: %w", err)
		}
	}

	metrics.RecordSegmentOutcome(in.Market.Name, string(key.Segment),
		in.Competition.TotalSupply, in.Competition.ActualSalesVolume, in.Competition.SaturationLevel)

	logging.LoggerFromContext(ctx).Log("INFO", "Market segment processed", map[string]interface{}{
		"market":     in.Market.Name,
		"bike_type":  in.BikeType.Name,
		"segment":    string(key.Segment),
		"demand":     in.Competition.EstimatedDemand,
		"max_volume": in.Competition.MaximumVolume,
		"supply":     in.Competition.TotalSupply,
		"sold":       in.Competition.ActualSalesVolume,
		"saturation": in.Competition.SaturationLevel,
	})

	return &SegmentResult{
		Key:         key,
		Offers:      len(book.Offers),
		Allocated:   market.TotalAllocated(allocations),
		Execution:   execution,
		Competition: in.Competition,
	}, nil
}

// finalizeDecisions marks every decision of the key processed exactly once
func (p *SegmentProcessor) finalizeDecisions(ctx context.Context, book *OfferBook) error {
	logger := logging.LoggerFromContext(ctx)
	for _, d := range book.Decisions {
		if err := d.Finalize(); err != nil {
			return err
		}
		if err := p.decisionRepo.Save(ctx, d); err != nil {
			return fmt.Errorf("failed to save decision %d: %w", d.ID, err)
		}
		logger.Log("INFO", "Sales decision processed", map[string]interface{}{
			"decision_id":   d.ID,
			"quantity":      d.Quantity,
			"quantity_sold": d.QuantitySold,
			"revenue":       d.ActualRevenue.StringFixed(2),
			"unsold_reason": string(d.UnsoldReason),
		})
	}
	return nil
}
