package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
)

// FinancialMetricsCollector handles revenue, balance and write-down metrics
type FinancialMetricsCollector struct {
	playerBalance    prometheus.Gauge
	playerUnitsSold  *prometheus.CounterVec
	playerRevenue    *prometheus.CounterVec
	saleRevenue      *prometheus.HistogramVec
	competitorUnits  *prometheus.CounterVec
	competitorIncome *prometheus.CounterVec
	writeDowns       *prometheus.CounterVec
}

// NewFinancialMetricsCollector creates a new financial metrics collector
func NewFinancialMetricsCollector() *FinancialMetricsCollector {
	return &FinancialMetricsCollector{
		playerBalance: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "player_balance",
				Help:      "Session balance after the last player sale",
			},
		),

		playerUnitsSold: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "player_units_sold_total",
				Help:      "Player bikes sold per market",
			},
			[]string{"market"},
		),

		playerRevenue: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "player_revenue_total",
				Help:      "Player net revenue per market",
			},
			[]string{"market"},
		),

		saleRevenue: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sale_revenue",
				Help:      "Net revenue distribution of executed sales",
				Buckets:   []float64{100, 250, 500, 1000, 2500, 5000, 10000, 50000},
			},
			[]string{"seller"},
		),

		competitorUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "competitor_units_sold_total",
				Help:      "Competitor bikes sold per strategy",
			},
			[]string{"strategy"},
		),

		competitorIncome: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "competitor_revenue_total",
				Help:      "Competitor revenue per strategy",
			},
			[]string{"strategy"},
		),

		writeDowns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "liquidation_write_down_total",
				Help:      "Resources written down by liquidation per strategy",
			},
			[]string{"strategy"},
		),
	}
}

// Register registers all financial metrics with the Prometheus registry
func (c *FinancialMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.playerBalance,
		c.playerUnitsSold,
		c.playerRevenue,
		c.saleRevenue,
		c.competitorUnits,
		c.competitorIncome,
		c.writeDowns,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordPlayerSale records sold player units and the resulting balance
func (c *FinancialMetricsCollector) RecordPlayerSale(market string, units int, revenue float64, balance float64) {
	c.playerUnitsSold.WithLabelValues(market).Add(float64(units))
	c.playerRevenue.WithLabelValues(market).Add(revenue)
	c.saleRevenue.WithLabelValues("player").Observe(math.Abs(revenue))
	c.playerBalance.Set(balance)
}

// RecordCompetitorSale records sold competitor units
func (c *FinancialMetricsCollector) RecordCompetitorSale(strategy string, units int, revenue float64) {
	c.competitorUnits.WithLabelValues(strategy).Add(float64(units))
	c.competitorIncome.WithLabelValues(strategy).Add(revenue)
	c.saleRevenue.WithLabelValues("competitor").Observe(math.Abs(revenue))
}

// RecordWriteDown records a liquidation write-down
func (c *FinancialMetricsCollector) RecordWriteDown(strategy string, amount float64) {
	c.writeDowns.WithLabelValues(strategy).Add(amount)
}
