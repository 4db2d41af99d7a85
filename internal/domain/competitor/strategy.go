package competitor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// Strategy is the closed set of AI competitor behaviours
type Strategy string

const (
	StrategyCheapOnly       Strategy = "cheap_only"
	StrategyBalanced        Strategy = "balanced"
	StrategyPremiumFocus    Strategy = "premium_focus"
	StrategyEBikeSpecialist Strategy = "e_bike_specialist"
)

// AllStrategies lists every known strategy
var AllStrategies = []Strategy{StrategyCheapOnly, StrategyBalanced, StrategyPremiumFocus, StrategyEBikeSpecialist}

const (
	baseMaterialCost  = 200.0
	skilledLaborRate  = 15.0
	unskilledLabor    = 10.0
	defaultPreference = 0.5
)

// strategyProfile is the associated data of a strategy
type strategyProfile struct {
	segmentPreferences map[market.PriceSegment]float64
	costMultiplier     float64
	priceFactor        float64
	qualityBonus       float64
	bikePreference     func(b *market.BikeType) float64
}

var strategyProfiles = map[Strategy]strategyProfile{
	StrategyCheapOnly: {
		segmentPreferences: map[market.PriceSegment]float64{
			market.SegmentCheap: 0.8, market.SegmentStandard: 0.2, market.SegmentPremium: 0.0,
		},
		costMultiplier: 0.8,
		priceFactor:    0.7,
		qualityBonus:   0.9,
		bikePreference: func(b *market.BikeType) float64 {
			switch {
			case b.NameContains("city", "basic"):
				return 0.8
			case b.NameContains("e-", "mountain"):
				return 0.2
			default:
				return 0.5
			}
		},
	},
	StrategyPremiumFocus: {
		segmentPreferences: map[market.PriceSegment]float64{
			market.SegmentCheap: 0.1, market.SegmentStandard: 0.3, market.SegmentPremium: 0.6,
		},
		costMultiplier: 1.2,
		priceFactor:    1.3,
		qualityBonus:   1.2,
		bikePreference: func(b *market.BikeType) float64 {
			switch {
			case b.NameContains("mountain", "racing"):
				return 0.9
			case b.NameContains("e-"):
				return 0.7
			default:
				return 0.3
			}
		},
	},
	StrategyEBikeSpecialist: {
		segmentPreferences: map[market.PriceSegment]float64{
			market.SegmentCheap: 0.2, market.SegmentStandard: 0.5, market.SegmentPremium: 0.3,
		},
		costMultiplier: 1.0,
		priceFactor:    1.1,
		qualityBonus:   1.1,
		bikePreference: func(b *market.BikeType) float64 {
			if b.NameContains("e-") {
				return 0.9
			}
			return 0.1
		},
	},
	StrategyBalanced: {
		segmentPreferences: map[market.PriceSegment]float64{
			market.SegmentCheap: 0.3, market.SegmentStandard: 0.5, market.SegmentPremium: 0.2,
		},
		costMultiplier: 1.0,
		priceFactor:    1.0,
		qualityBonus:   1.0,
		bikePreference: func(*market.BikeType) float64 { return 0.6 },
	},
}

// ParseStrategy validates a strategy name
func ParseStrategy(value string) (Strategy, error) {
	s := Strategy(value)
	if _, ok := strategyProfiles[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, value)
	}
	return s, nil
}

// IsValid reports whether the strategy is known
func (s Strategy) IsValid() bool {
	_, ok := strategyProfiles[s]
	return ok
}

// profile resolves unknown strategies to the balanced defaults
func (s Strategy) profile() strategyProfile {
	if p, ok := strategyProfiles[s]; ok {
		return p
	}
	return strategyProfiles[StrategyBalanced]
}

// BikeTypePreference is the [0,1] appetite for producing a bike type
func (s Strategy) BikeTypePreference(bikeType *market.BikeType) float64 {
	return s.profile().bikePreference(bikeType)
}

// SegmentPreference is the sampling weight for a price segment. The weights are not normalized.
func (s Strategy) SegmentPreference(segment market.PriceSegment) float64 {
	if w, ok := s.profile().segmentPreferences[segment]; ok {
		return w
	}
	return 0.3
}

// PriceAdjustmentFactor scales competitor offer prices
func (s Strategy) PriceAdjustmentFactor() float64 {
	return s.profile().priceFactor
}

// QualityBonus scales competitor efficiency into an offer quality factor
func (s Strategy) QualityBonus() float64 {
	return s.profile().qualityBonus
}

// SpecialtyDiscount is applied to quality when selling outside the strategy's specialty segment
func (s Strategy) SpecialtyDiscount(segment market.PriceSegment) float64 {
	switch {
	case segment == market.SegmentPremium && s != StrategyPremiumFocus:
		return 0.9
	case segment == market.SegmentCheap && s != StrategyCheapOnly:
		return 0.95
	default:
		return 1.0
	}
}

// ProductionCost is (material + labor) / efficiency scaled by the strategy, rounded to cents
func (s Strategy) ProductionCost(bikeType *market.BikeType, efficiency float64) decimal.Decimal {
	if efficiency <= 0 {
		efficiency = minEfficiency
	}
	labor := bikeType.SkilledHours*skilledLaborRate + bikeType.UnskilledHours*unskilledLabor
	cost := (baseMaterialCost + labor) / efficiency * s.profile().costMultiplier
	return shared.MoneyFromFloat(cost)
}
