package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/bikesim-go/internal/infrastructure/database"
)

// SharedTestDB is the database reused by every BDD scenario
var SharedTestDB *gorm.DB

// InitializeSharedTestDB creates and migrates the shared test database.
// Called once in TestMain before running any scenario.
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables clears every simulation table.
// Called before each scenario to ensure test isolation.
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	// children first
	tables := []string{
		"transactions",
		"market_competitions",
		"sales_orders",
		"sales_decisions",
		"produced_bikes",
		"competitor_sales",
		"competitor_productions",
		"competitors",
		"business_strategy_effects",
		"bike_prices",
		"market_price_sensitivities",
		"market_demands",
		"bike_types",
		"markets",
		"sessions",
	}

	for _, table := range tables {
		if err := SharedTestDB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// CloseSharedTestDB closes the shared database connection
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
