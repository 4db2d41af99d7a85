package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "bikesim"
	// Subsystem for simulation metrics
	subsystem = "simulation"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSimulationCollector is set by SetGlobalSimulationCollector when metrics are enabled
	globalSimulationCollector SimulationMetricsRecorder

	// globalFinancialCollector is set by SetGlobalFinancialCollector when metrics are enabled
	globalFinancialCollector FinancialMetricsRecorder
)

// SimulationMetricsRecorder records month and market-segment outcomes
type SimulationMetricsRecorder interface {
	RecordMonthProcessed(salesMonth bool, duration float64, success bool)
	RecordSegmentOutcome(market, segment string, supply, sold int, saturation float64)
	RecordProduction(strategy string, units int)
	RecordLiquidation(strategy string, units int)
}

// FinancialMetricsRecorder records sales revenue and write-downs
type FinancialMetricsRecorder interface {
	RecordPlayerSale(market string, units int, revenue float64, balance float64)
	RecordCompetitorSale(strategy string, units int, revenue float64)
	RecordWriteDown(strategy string, amount float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalSimulationCollector sets the global simulation metrics collector
func SetGlobalSimulationCollector(collector SimulationMetricsRecorder) {
	globalSimulationCollector = collector
}

// SetGlobalFinancialCollector sets the global financial metrics collector
func SetGlobalFinancialCollector(collector FinancialMetricsRecorder) {
	globalFinancialCollector = collector
}

// RecordMonthProcessed records one orchestrator run globally
func RecordMonthProcessed(salesMonth bool, duration float64, success bool) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordMonthProcessed(salesMonth, duration, success)
	}
}

// RecordSegmentOutcome records the supply and sales of one market segment globally
func RecordSegmentOutcome(market, segment string, supply, sold int, saturation float64) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordSegmentOutcome(market, segment, supply, sold, saturation)
	}
}

// RecordProduction records competitor output globally
func RecordProduction(strategy string, units int) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordProduction(strategy, units)
	}
}

// RecordLiquidation records liquidated competitor units globally
func RecordLiquidation(strategy string, units int) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordLiquidation(strategy, units)
	}
}

// RecordPlayerSale records player units sold globally
func RecordPlayerSale(market string, units int, revenue float64, balance float64) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordPlayerSale(market, units, revenue, balance)
	}
}

// RecordCompetitorSale records competitor units sold globally
func RecordCompetitorSale(strategy string, units int, revenue float64) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordCompetitorSale(strategy, units, revenue)
	}
}

// RecordWriteDown records a liquidation write-down globally
func RecordWriteDown(strategy string, amount float64) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordWriteDown(strategy, amount)
	}
}
