package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// VolumeEngine computes and persists the demand side of every market segment
type VolumeEngine struct {
	demandRepo      market.DemandConfigRepository
	competitionRepo market.CompetitionRepository
	strategy        market.BusinessStrategyProvider
	random          shared.RandomSource
}

// NewVolumeEngine creates a new volume engine. strategy may be nil, which means neutral effects.
func NewVolumeEngine(
	demandRepo market.DemandConfigRepository,
	competitionRepo market.CompetitionRepository,
	strategy market.BusinessStrategyProvider,
	random shared.RandomSource,
) *VolumeEngine {
	return &VolumeEngine{
		demandRepo:      demandRepo,
		competitionRepo: competitionRepo,
		strategy:        strategy,
		random:          random,
	}
}

// Effects returns the session's business-strategy effects. Provider failures degrade
// to neutral effects and are never returned.
func (e *VolumeEngine) Effects(ctx context.Context, sessionID string) market.BusinessEffects {
	if e.strategy == nil {
		return market.NeutralBusinessEffects()
	}
	effects, err := e.strategy.Effects(ctx, sessionID)
	if err != nil {
		logging.LoggerFromContext(ctx).Log("WARNING", "Business strategy unavailable, using neutral effects", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return market.NeutralBusinessEffects()
	}
	return effects
}

// Estimate computes demand, volume ceiling, elasticity and optimal price for one key and
// upserts the competition record. Observed outcome fields of an existing record are kept.
func (e *VolumeEngine) Estimate(
	ctx context.Context,
	key market.Key,
	m *market.Market,
	bikeType *market.BikeType,
	effects market.BusinessEffects,
) (*market.Competition, error) {
	ctx, span := tracer.Start(ctx, "market.estimate_volume")
	span.SetAttributes(
		sessionAttr(key.SessionID),
		attribute.String("market", m.Name),
		attribute.String("bike_type", bikeType.Name),
		attribute.String("segment", string(key.Segment)),
	)
	var err error
	defer func() { endSpan(span, err) }()

	demandPct, err := e.demandRepo.DemandPercentage(ctx, key.SessionID, m.ID, bikeType.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load demand percentage: %w", err)
	}
	sensitivity, err := e.demandRepo.PriceSensitivity(ctx, key.SessionID, m.ID, key.Segment)
	if err != nil {
		return nil, fmt.Errorf("failed to load price sensitivity: %w", err)
	}
	configuredPrice, err := e.demandRepo.ConfiguredPrice(ctx, key.SessionID, bikeType.ID, key.Segment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configured price: %w", err)
	}

	estimate := market.VolumeEstimate{
		EstimatedDemand: market.BaseDemand(market.DemandInputs{
			Market:           m,
			BikeType:         bikeType,
			Segment:          key.Segment,
			Month:            key.Period.Month,
			DemandPercentage: demandPct,
			Effects:          effects,
			Jitter:           e.random.Uniform(0.8, 1.2),
		}),
		MaximumVolume: market.MaximumVolume(m, bikeType, key.Segment),
		Elasticity:    market.DemandElasticity(m, bikeType, key.Segment, sensitivity),
		OptimalPrice:  market.OptimalPrice(bikeType, key.Segment, configuredPrice),
	}

	competition, err := e.competitionRepo.Find(ctx, key)
	switch {
	case err == nil:
	case isCompetitionNotFound(err):
		competition = market.NewCompetition(key)
		err = nil
	default:
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}

	competition.ApplyVolume(estimate)
	if err = e.competitionRepo.Upsert(ctx, competition); err != nil {
		return nil, fmt.Errorf("failed to upsert competition: %w", err)
	}

	return competition, nil
}
