package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/bikesim-go/test/bdd/steps"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

func TestMain(m *testing.M) {
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic(err)
	}
	code := m.Run()
	helpers.CloseSharedTestDB()
	os.Exit(code)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Domain scenarios first: they own the shorter step patterns
	steps.InitializeVolumeScenario(sc)
	steps.InitializeAgingScenario(sc)
	steps.InitializeAllocationScenario(sc)
	steps.InitializeLiquidationScenario(sc)
	steps.InitializeMonthScenario(sc)
}
