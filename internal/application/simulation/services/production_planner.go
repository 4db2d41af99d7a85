package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/bikesim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// ProductionPlanner decides what every competitor builds in a period and books the yield as inventory
type ProductionPlanner struct {
	competitorRepo competitor.Repository
	lotRepo        competitor.LotRepository
	marketRepo     market.MarketRepository
	random         shared.RandomSource
}

// NewProductionPlanner creates a new production planner
func NewProductionPlanner(
	competitorRepo competitor.Repository,
	lotRepo competitor.LotRepository,
	marketRepo market.MarketRepository,
	random shared.RandomSource,
) *ProductionPlanner {
	return &ProductionPlanner{
		competitorRepo: competitorRepo,
		lotRepo:        lotRepo,
		marketRepo:     marketRepo,
		random:         random,
	}
}

// ProductionResult summarizes one planning pass
type ProductionResult struct {
	LotsTouched   int
	UnitsProduced int
}

// PlanAll runs production planning for every competitor of the session
func (p *ProductionPlanner) PlanAll(ctx context.Context, sessionID string, period shared.Period) (*ProductionResult, error) {
	ctx, span := tracer.Start(ctx, "competitor.plan_production")
	var err error
	defer func() { endSpan(span, err) }()

	competitors, err := p.competitorRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}
	bikeTypes, err := p.marketRepo.ListBikeTypes(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bike types: %w", err)
	}

	total := &ProductionResult{}
	for _, c := range competitors {
		var result *ProductionResult
		result, err = p.Plan(ctx, c, bikeTypes, period)
		if err != nil {
			return nil, fmt.Errorf("failed to plan production for competitor %s: %w", c.Name, err)
		}
		total.LotsTouched += result.LotsTouched
		total.UnitsProduced += result.UnitsProduced
	}
	return total, nil
}

// Plan distributes one competitor's capacity over bike types and segments.
// Zero capacity or skipping every candidate is a valid outcome.
func (p *ProductionPlanner) Plan(ctx context.Context, c *competitor.Competitor, bikeTypes []*market.BikeType, period shared.Period) (*ProductionResult, error) {
	logger := logging.LoggerFromContext(ctx)
	result := &ProductionResult{}

	capacity := c.ProductionCapacity()
	if capacity <= 0 || len(bikeTypes) == 0 {
		return result, nil
	}

	// Jittered preference order; the jitter is what lets markets diversify
	type scored struct {
		bikeType   *market.BikeType
		preference float64
		score      float64
	}
	candidates := make([]scored, len(bikeTypes))
	for i, bt := range bikeTypes {
		pref := c.Strategy.BikeTypePreference(bt)
		candidates[i] = scored{bikeType: bt, preference: pref, score: pref * p.random.Uniform(0.8, 1.2)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	remaining := capacity
	for _, cand := range candidates {
		if remaining <= 0 {
			break
		}
		if p.random.Float64() > cand.preference {
			continue
		}

		slice := int(float64(capacity) * cand.preference * p.random.Uniform(0.3, 0.8))
		if slice > remaining {
			slice = remaining
		}
		if slice < 1 {
			continue
		}

		lots, units, err := p.distributeAcrossSegments(ctx, c, cand.bikeType, slice, period)
		if err != nil {
			return nil, err
		}
		result.LotsTouched += lots
		result.UnitsProduced += units
		remaining -= slice
	}

	if result.UnitsProduced > 0 {
		c.RecordProduction(result.UnitsProduced)
		if err := p.competitorRepo.Save(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to save competitor: %w", err)
		}
		metrics.RecordProduction(string(c.Strategy), result.UnitsProduced)
	}

	logger.Log("DEBUG", "Competitor production planned", map[string]interface{}{
		"competitor": c.Name,
		"strategy":   string(c.Strategy),
		"capacity":   capacity,
		"lots":       result.LotsTouched,
		"units":      result.UnitsProduced,
	})

	return result, nil
}

func (p *ProductionPlanner) distributeAcrossSegments(
	ctx context.Context,
	c *competitor.Competitor,
	bikeType *market.BikeType,
	slice int,
	period shared.Period,
) (lots int, units int, err error) {
	for _, segment := range market.AllSegments {
		pref := c.Strategy.SegmentPreference(segment)
		if p.random.Float64() > pref {
			continue
		}

		planned := int(float64(slice) * pref * p.random.Uniform(0.5, 1.5))
		if planned > slice {
			planned = slice
		}
		if planned < 1 {
			continue
		}

		lot, err := p.lotRepo.FindLot(ctx, c.ID, bikeType.ID, segment, period)
		switch {
		case err == nil:
			lot.AddPlanned(planned)
		case isLotNotFound(err):
			lot = competitor.NewProductionLot(c.ID, bikeType.ID, segment, period, planned, c.UnitProductionCost(bikeType))
		default:
			return 0, 0, fmt.Errorf("failed to load production lot: %w", err)
		}

		// Production always under-delivers, scaled by efficiency
		produced := int(float64(planned) * c.Efficiency * p.random.Uniform(0.8, 1.0))
		lot.RecordYield(produced)

		if err := p.lotRepo.SaveLot(ctx, lot); err != nil {
			return 0, 0, fmt.Errorf("failed to save production lot: %w", err)
		}
		lots++
		units += produced
	}
	return lots, units, nil
}
