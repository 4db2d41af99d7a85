package commands

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/market"
)

// Scenario is the opening state of a session: its markets, bike types, rivals and demand configuration
type Scenario struct {
	Markets       []MarketEntry
	BikeTypes     []BikeTypeEntry
	Competitors   []CompetitorEntry
	Demand        []DemandEntry
	Sensitivities []SensitivityEntry
	Prices        []PriceEntry
	OpeningStock  []StockEntry
	Effects       *market.BusinessEffects
}

// MarketEntry describes one market
type MarketEntry struct {
	Name             string
	Location         string
	MonthlyCapacity  int
	ElasticityFactor float64
	TransportHome    decimal.Decimal
	TransportForeign decimal.Decimal
	Factors          market.LocationFactors
}

// BikeTypeEntry describes one bike type
type BikeTypeEntry struct {
	Name           string
	SkilledHours   float64
	UnskilledHours float64
}

// CompetitorEntry describes one AI competitor
type CompetitorEntry struct {
	Name           string
	Strategy       string
	Resources      decimal.Decimal
	MarketPresence float64
	Aggressiveness float64
	Efficiency     float64
}

// DemandEntry is the demand share (fraction of market capacity) of a bike type in a market
type DemandEntry struct {
	Market     string
	BikeType   string
	Percentage float64
}

// SensitivityEntry is the price sensitivity, in percent, of a market segment
type SensitivityEntry struct {
	Market     string
	Segment    string
	Percentage float64
}

// PriceEntry is the configured selling price of a bike type in a segment
type PriceEntry struct {
	BikeType string
	Segment  string
	Price    decimal.Decimal
}

// StockEntry is a batch of player bikes present when the session starts
type StockEntry struct {
	BikeType string
	Segment  string
	Quantity int
	UnitCost decimal.Decimal
}

// ScenarioLoader reads a scenario from a workbook or other source
type ScenarioLoader interface {
	Load(ctx context.Context, path string) (*Scenario, error)
}

type defaultMarket struct {
	name       string
	distanceKm int64
	multiplier float64
}

var defaultMarkets = []defaultMarket{
	{"Hamburg", 0, 1.0},
	{"Berlin", 300, 1.5},
	{"München", 600, 1.2},
	{"Köln", 400, 0.8},
	{"Frankfurt", 500, 0.9},
}

type defaultBikeType struct {
	name       string
	skilled    float64
	unskilled  float64
	baseDemand int
	prices     [3]float64
}

var defaultBikeTypes = []defaultBikeType{
	{"Damenrad", 3.5, 2.0, 50, [3]float64{299.99, 399.99, 549.99}},
	{"Herrenrad", 3.5, 2.0, 45, [3]float64{299.99, 399.99, 549.99}},
	{"Mountainbike", 4.0, 2.5, 30, [3]float64{449.99, 649.99, 899.99}},
	{"Rennrad", 4.5, 1.5, 20, [3]float64{599.99, 899.99, 1299.99}},
	{"E-Bike", 5.0, 3.0, 35, [3]float64{1199.99, 1599.99, 2199.99}},
	{"E-Mountainbike", 5.5, 3.5, 25, [3]float64{1499.99, 1999.99, 2799.99}},
	{"E-Mountain-Bike", 8.5, 4.0, 15, [3]float64{2499.99, 3299.99, 4499.99}},
}

const (
	defaultMarketCapacity  = 200
	transportCostPerKm     = 0.5
	foreignTransportFactor = 1.5
)

// sensitivity in percent per segment; cheap buyers react hardest to price
var defaultSensitivity = map[market.PriceSegment]float64{
	market.SegmentCheap:    80,
	market.SegmentStandard: 60,
	market.SegmentPremium:  40,
}

// DefaultScenario is the built-in opening: five German markets, seven bike types with
// configured prices and demand shares, and the default competitor roster
func DefaultScenario() *Scenario {
	s := &Scenario{}

	for _, m := range defaultMarkets {
		home := decimal.NewFromInt(m.distanceKm).Mul(decimal.NewFromFloat(transportCostPerKm))
		s.Markets = append(s.Markets, MarketEntry{
			Name:             m.name,
			Location:         m.name,
			MonthlyCapacity:  defaultMarketCapacity,
			ElasticityFactor: 1.0,
			TransportHome:    home,
			TransportForeign: home.Mul(decimal.NewFromFloat(foreignTransportFactor)),
			Factors:          market.DefaultLocationFactors(),
		})
		for _, segment := range market.AllSegments {
			s.Sensitivities = append(s.Sensitivities, SensitivityEntry{
				Market:     m.name,
				Segment:    string(segment),
				Percentage: defaultSensitivity[segment],
			})
		}
	}

	for _, b := range defaultBikeTypes {
		s.BikeTypes = append(s.BikeTypes, BikeTypeEntry{Name: b.name, SkilledHours: b.skilled, UnskilledHours: b.unskilled})
		for i, segment := range market.AllSegments {
			s.Prices = append(s.Prices, PriceEntry{
				BikeType: b.name,
				Segment:  string(segment),
				Price:    decimal.NewFromFloat(b.prices[i]),
			})
		}
		for _, m := range defaultMarkets {
			// whole bikes per hundred units of capacity
			demand := int(float64(b.baseDemand) * m.multiplier)
			s.Demand = append(s.Demand, DemandEntry{
				Market:     m.name,
				BikeType:   b.name,
				Percentage: float64(demand) / 100.0,
			})
		}
	}

	return s
}
