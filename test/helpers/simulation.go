package helpers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	sessionCmd "github.com/andrescamacho/bikesim-go/internal/application/session/commands"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/internal/infrastructure/container"
)

// StaticScenarioLoader returns the same scenario for every path
type StaticScenarioLoader struct {
	Scenario *sessionCmd.Scenario
}

func (l *StaticScenarioLoader) Load(ctx context.Context, path string) (*sessionCmd.Scenario, error) {
	return l.Scenario, nil
}

// SingleMarketScenario is one market with one city bike type and an idle competitor that
// never produces, so every unit offered belongs to the player
func SingleMarketScenario() *sessionCmd.Scenario {
	return &sessionCmd.Scenario{
		Markets: []sessionCmd.MarketEntry{{
			Name:             "Hamburg",
			Location:         "Hamburg",
			MonthlyCapacity:  1000,
			ElasticityFactor: 1.0,
			TransportHome:    decimal.NewFromInt(10),
			TransportForeign: decimal.NewFromInt(15),
			Factors:          market.DefaultLocationFactors(),
		}},
		BikeTypes: []sessionCmd.BikeTypeEntry{{Name: "City Bike", SkilledHours: 3, UnskilledHours: 2}},
		Competitors: []sessionCmd.CompetitorEntry{{
			Name:           "Idle Cycles",
			Strategy:       "balanced",
			Resources:      decimal.Zero,
			MarketPresence: 10,
			Aggressiveness: 0.5,
			Efficiency:     0.5,
		}},
		Demand: []sessionCmd.DemandEntry{{Market: "Hamburg", BikeType: "City Bike", Percentage: 1.0}},
		Prices: []sessionCmd.PriceEntry{
			{BikeType: "City Bike", Segment: "cheap", Price: decimal.NewFromInt(400)},
			{BikeType: "City Bike", Segment: "standard", Price: decimal.NewFromInt(600)},
			{BikeType: "City Bike", Segment: "premium", Price: decimal.NewFromInt(1200)},
		},
	}
}

// BuildTestContainer wires the simulation on db with a single-market scenario loader,
// a mock clock and the given random source and allocation strategy
func BuildTestContainer(db *gorm.DB, random shared.RandomSource, strategy market.AllocationStrategy) (*container.Container, error) {
	return container.Build(db, container.Options{
		Random:             random,
		Clock:              shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Loader:             &StaticScenarioLoader{Scenario: SingleMarketScenario()},
		AllocationStrategy: strategy,
		SalesCycleMonths:   3,
	})
}
