package market

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

const (
	// DefaultDemandPercentage applies when no demand share is configured for a (market, bike type)
	DefaultDemandPercentage = 0.3

	minStrategyMultiplier = 0.5
	maxStrategyMultiplier = 2.0

	minElasticity = 0.1
	maxElasticity = 3.0

	// floorEpsilon absorbs binary float error before truncating (0.6*300 must be 180)
	floorEpsilon = 1e-9
)

// BusinessEffects are the marketing and sustainability inputs to demand
type BusinessEffects struct {
	// DemandBoost is an additive percentage, e.g. 10 for +10%
	DemandBoost float64
	// DemandModifier is a multiplier, 1.0 is neutral
	DemandModifier float64
}

// NeutralBusinessEffects leaves demand unchanged
func NeutralBusinessEffects() BusinessEffects {
	return BusinessEffects{DemandBoost: 0, DemandModifier: 1.0}
}

// DemandMultiplier combines the effects for a segment and clamps the result to [0.5, 2.0]
func (e BusinessEffects) DemandMultiplier(segment PriceSegment) float64 {
	combined := (1.0 + e.DemandBoost/100.0) * e.DemandModifier
	combined = 1.0 + (combined-1.0)*segment.StrategyResponsiveness()
	return clamp(combined, minStrategyMultiplier, maxStrategyMultiplier)
}

// DemandInputs carries everything base demand depends on
type DemandInputs struct {
	Market           *Market
	BikeType         *BikeType
	Segment          PriceSegment
	Month            int
	DemandPercentage *float64
	Effects          BusinessEffects
	// Jitter is the random multiplier, drawn by the caller from [0.8, 1.2]
	Jitter float64
}

// BaseDemand computes segment demand. Each stage truncates to whole bikes; the result is at least 1.
func BaseDemand(in DemandInputs) int {
	pct := DefaultDemandPercentage
	if in.DemandPercentage != nil {
		pct = *in.DemandPercentage
	}

	typeDemand := floorInt(float64(in.Market.MonthlyCapacity) * pct)
	segmentDemand := floorInt(float64(typeDemand) * in.Segment.EnrichedDemandShare())
	seasonal := floorInt(float64(segmentDemand) * VolumeSeasonalFactor(in.BikeType, in.Month))
	strategyAdjusted := floorInt(float64(seasonal) * in.Effects.DemandMultiplier(in.Segment))
	final := floorInt(float64(strategyAdjusted) * in.Jitter)

	return maxInt(1, final)
}

// MaximumVolume is the absolute ceiling of units sellable for a segment in one period
func MaximumVolume(m *Market, bikeType *BikeType, segment PriceSegment) int {
	segmentCapacity := floorInt(float64(m.MonthlyCapacity) * segment.CapacityShare())
	typeCapacity := floorInt(float64(segmentCapacity) * bikeType.Popularity())
	return maxInt(1, typeCapacity)
}

// DemandElasticity derives the elasticity exponent, clamped to [0.1, 3.0].
// sensitivityPct is the configured price sensitivity in percent, nil when absent.
func DemandElasticity(m *Market, bikeType *BikeType, segment PriceSegment, sensitivityPct *float64) float64 {
	base := segment.DefaultElasticity()
	if sensitivityPct != nil {
		base = *sensitivityPct / 100.0
	}
	elasticity := base * m.ElasticityFactor * bikeType.ElasticityAdjustment()
	return clamp(elasticity, minElasticity, maxElasticity)
}

// OptimalPrice returns the configured price when present, else the segment reference price
// adjusted for bike-type complexity
func OptimalPrice(bikeType *BikeType, segment PriceSegment, configured *decimal.Decimal) decimal.Decimal {
	if configured != nil {
		return *configured
	}
	return shared.MoneyFromFloat(segment.ReferencePrice() * bikeType.ComplexityFactor())
}

// SimplifiedDemand is the demand model of the deferred-decision path:
// capacity scaled by location, the simplified segment share and simplified seasonality.
func SimplifiedDemand(m *Market, bikeType *BikeType, segment PriceSegment, month int) int {
	demand := floorInt(float64(m.MonthlyCapacity) *
		m.BikeTypeDemandMultiplier(bikeType) *
		segment.SimplifiedDemandShare() *
		SimplifiedSeasonalFactor(bikeType, month))
	return maxInt(1, demand)
}

func floorInt(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Floor(v + floorEpsilon))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SimplifiedEstimate is the snapshot used by the deferred-decision path: simplified demand
// under the regular volume ceiling, with unconfigured elasticity and optimal price
func SimplifiedEstimate(m *Market, bikeType *BikeType, segment PriceSegment, month int) VolumeEstimate {
	return VolumeEstimate{
		EstimatedDemand: SimplifiedDemand(m, bikeType, segment, month),
		MaximumVolume:   MaximumVolume(m, bikeType, segment),
		Elasticity:      DemandElasticity(m, bikeType, segment, nil),
		OptimalPrice:    OptimalPrice(bikeType, segment, nil),
	}
}
