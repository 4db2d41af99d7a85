package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LocationFactors bias demand for bike categories at a market's location
type LocationFactors struct {
	GreenCity    float64
	MountainBike float64
	RoadBike     float64
	CityBike     float64
}

// DefaultLocationFactors leaves every category unbiased
func DefaultLocationFactors() LocationFactors {
	return LocationFactors{GreenCity: 1.0, MountainBike: 1.0, RoadBike: 1.0, CityBike: 1.0}
}

// Market is a sales venue. Read-only to the simulation core once created.
type Market struct {
	ID                   uint
	SessionID            string
	Name                 string
	Location             string
	MonthlyCapacity      int
	ElasticityFactor     float64
	TransportCostHome    decimal.Decimal
	TransportCostForeign decimal.Decimal
	Factors              LocationFactors
}

// NewMarket creates a market with validation
func NewMarket(
	sessionID, name, location string,
	monthlyCapacity int,
	elasticityFactor float64,
	transportHome, transportForeign decimal.Decimal,
) (*Market, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidMarket)
	}
	if monthlyCapacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be non-negative, got %d", ErrInvalidMarket, monthlyCapacity)
	}
	if elasticityFactor < 0 {
		return nil, fmt.Errorf("%w: elasticity factor must be non-negative, got %f", ErrInvalidMarket, elasticityFactor)
	}
	if transportHome.IsNegative() || transportForeign.IsNegative() {
		return nil, fmt.Errorf("%w: transport costs must be non-negative", ErrInvalidMarket)
	}
	return &Market{
		SessionID:            sessionID,
		Name:                 name,
		Location:             location,
		MonthlyCapacity:      monthlyCapacity,
		ElasticityFactor:     elasticityFactor,
		TransportCostHome:    transportHome,
		TransportCostForeign: transportForeign,
		Factors:              DefaultLocationFactors(),
	}, nil
}

// BikeTypeDemandMultiplier maps the location factors onto a bike type by name
func (m *Market) BikeTypeDemandMultiplier(bikeType *BikeType) float64 {
	switch {
	case bikeType.NameContains("e-", "ebike"):
		return m.Factors.GreenCity
	case bikeType.NameContains("mountain", "mtb"):
		return m.Factors.MountainBike
	case bikeType.NameContains("renn", "road", "racing"):
		return m.Factors.RoadBike
	case bikeType.NameContains("damen", "herren", "city", "commuter"):
		return m.Factors.CityBike
	default:
		return 1.0
	}
}
