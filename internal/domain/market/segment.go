package market

import "fmt"

// PriceSegment is one of the three price tiers a bike type is sold in
type PriceSegment string

const (
	SegmentCheap    PriceSegment = "cheap"
	SegmentStandard PriceSegment = "standard"
	SegmentPremium  PriceSegment = "premium"
)

// AllSegments lists the segments in processing order
var AllSegments = []PriceSegment{SegmentCheap, SegmentStandard, SegmentPremium}

// IsValid reports whether the segment is one of the known tiers
func (s PriceSegment) IsValid() bool {
	switch s {
	case SegmentCheap, SegmentStandard, SegmentPremium:
		return true
	}
	return false
}

func (s PriceSegment) String() string {
	return string(s)
}

// ParsePriceSegment converts a string into a PriceSegment
func ParsePriceSegment(value string) (PriceSegment, error) {
	s := PriceSegment(value)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSegment, value)
	}
	return s, nil
}

// segmentProfile bundles every per-segment constant used by demand, pricing and allocation.
// Capacity shares and demand shares are independent knobs and intentionally differ.
type segmentProfile struct {
	capacityShare         float64
	enrichedDemandShare   float64
	simplifiedDemandShare float64
	defaultElasticity     float64
	referencePrice        float64
	simplifiedBasePrice   float64
	playerQuality         float64
	competitorMarkup      float64
	strategyResponse      float64
}

var segmentProfiles = map[PriceSegment]segmentProfile{
	SegmentCheap: {
		capacityShare:         0.6,
		enrichedDemandShare:   0.5,
		simplifiedDemandShare: 0.4,
		defaultElasticity:     1.5,
		referencePrice:        300,
		simplifiedBasePrice:   400,
		playerQuality:         0.8,
		competitorMarkup:      1.2,
		strategyResponse:      0.7,
	},
	SegmentStandard: {
		capacityShare:         0.3,
		enrichedDemandShare:   0.35,
		simplifiedDemandShare: 0.4,
		defaultElasticity:     1.0,
		referencePrice:        600,
		simplifiedBasePrice:   700,
		playerQuality:         1.0,
		competitorMarkup:      1.5,
		strategyResponse:      1.0,
	},
	SegmentPremium: {
		capacityShare:         0.1,
		enrichedDemandShare:   0.15,
		simplifiedDemandShare: 0.2,
		defaultElasticity:     0.7,
		referencePrice:        1200,
		simplifiedBasePrice:   1200,
		playerQuality:         1.3,
		competitorMarkup:      2.0,
		strategyResponse:      1.3,
	},
}

// fallbackProfile applies to segments outside the known set
var fallbackProfile = segmentProfile{
	capacityShare:         0.3,
	enrichedDemandShare:   0.3,
	simplifiedDemandShare: 0.33,
	defaultElasticity:     1.0,
	referencePrice:        600,
	simplifiedBasePrice:   700,
	playerQuality:         1.0,
	competitorMarkup:      1.5,
	strategyResponse:      1.0,
}

func (s PriceSegment) profile() segmentProfile {
	if p, ok := segmentProfiles[s]; ok {
		return p
	}
	return fallbackProfile
}

// CapacityShare is the fraction of market capacity reserved for the segment
func (s PriceSegment) CapacityShare() float64 { return s.profile().capacityShare }

// EnrichedDemandShare splits type-level demand in the volume engine (0.5/0.35/0.15)
func (s PriceSegment) EnrichedDemandShare() float64 { return s.profile().enrichedDemandShare }

// SimplifiedDemandShare splits capacity in the deferred-decision demand model (0.4/0.4/0.2)
func (s PriceSegment) SimplifiedDemandShare() float64 { return s.profile().simplifiedDemandShare }

// DefaultElasticity applies when no price sensitivity is configured
func (s PriceSegment) DefaultElasticity() float64 { return s.profile().defaultElasticity }

// ReferencePrice is the optimal-price base before bike-type complexity
func (s PriceSegment) ReferencePrice() float64 { return s.profile().referencePrice }

// SimplifiedBasePrice anchors the average-price elasticity adjustment
func (s PriceSegment) SimplifiedBasePrice() float64 { return s.profile().simplifiedBasePrice }

// PlayerQualityFactor is the fixed quality of player offers in this segment
func (s PriceSegment) PlayerQualityFactor() float64 { return s.profile().playerQuality }

// CompetitorMarkup is applied to a competitor's production cost
func (s PriceSegment) CompetitorMarkup() float64 { return s.profile().competitorMarkup }

// StrategyResponsiveness scales how strongly marketing and sustainability move demand
func (s PriceSegment) StrategyResponsiveness() float64 { return s.profile().strategyResponse }
