package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SimulationMetricsCollector handles month processing and market segment metrics
type SimulationMetricsCollector struct {
	// Orchestrator metrics
	monthDuration   *prometheus.HistogramVec
	monthsProcessed *prometheus.CounterVec

	// Market segment metrics
	segmentSupply     *prometheus.CounterVec
	segmentSold       *prometheus.CounterVec
	segmentSaturation *prometheus.GaugeVec

	// Competitor inventory metrics
	unitsProduced   *prometheus.CounterVec
	unitsLiquidated *prometheus.CounterVec
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		monthDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "month_duration_seconds",
				Help:      "Duration of one simulated month",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"sales_month"},
		),

		monthsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "months_processed_total",
				Help:      "Total simulated months by outcome",
			},
			[]string{"sales_month", "status"},
		),

		segmentSupply: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "segment_supply_units_total",
				Help:      "Units offered per market and price segment",
			},
			[]string{"market", "segment"},
		),

		segmentSold: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "segment_sold_units_total",
				Help:      "Units sold per market and price segment",
			},
			[]string{"market", "segment"},
		),

		segmentSaturation: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "segment_saturation",
				Help:      "Supply to maximum volume ratio of the last sales cycle",
			},
			[]string{"market", "segment"},
		),

		unitsProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "competitor_units_produced_total",
				Help:      "Units produced by competitors per strategy",
			},
			[]string{"strategy"},
		),

		unitsLiquidated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "competitor_units_liquidated_total",
				Help:      "Units cleared by competitor liquidation per strategy",
			},
			[]string{"strategy"},
		),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.monthDuration,
		c.monthsProcessed,
		c.segmentSupply,
		c.segmentSold,
		c.segmentSaturation,
		c.unitsProduced,
		c.unitsLiquidated,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordMonthProcessed records one orchestrator run
func (c *SimulationMetricsCollector) RecordMonthProcessed(salesMonth bool, duration float64, success bool) {
	label := boolLabel(salesMonth)
	status := "success"
	if !success {
		status = "error"
	}
	c.monthDuration.WithLabelValues(label).Observe(duration)
	c.monthsProcessed.WithLabelValues(label, status).Inc()
}

// RecordSegmentOutcome records the outcome of one market segment allocation
func (c *SimulationMetricsCollector) RecordSegmentOutcome(market, segment string, supply, sold int, saturation float64) {
	c.segmentSupply.WithLabelValues(market, segment).Add(float64(supply))
	c.segmentSold.WithLabelValues(market, segment).Add(float64(sold))
	c.segmentSaturation.WithLabelValues(market, segment).Set(saturation)
}

// RecordProduction records competitor output
func (c *SimulationMetricsCollector) RecordProduction(strategy string, units int) {
	c.unitsProduced.WithLabelValues(strategy).Add(float64(units))
}

// RecordLiquidation records liquidated units
func (c *SimulationMetricsCollector) RecordLiquidation(strategy string, units int) {
	c.unitsLiquidated.WithLabelValues(strategy).Add(float64(units))
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
