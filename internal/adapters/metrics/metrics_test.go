package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
)

type processMonthCommand struct{}

func TestSetup_RegistersCollectorsAndGlobals(t *testing.T) {
	collectors, err := Setup()
	require.NoError(t, err)
	t.Cleanup(func() {
		Registry = nil
		SetGlobalSimulationCollector(nil)
		SetGlobalFinancialCollector(nil)
	})

	RecordSegmentOutcome("Berlin", "cheap", 40, 25, 1.25)
	RecordSegmentOutcome("Berlin", "cheap", 10, 5, 0.5)
	RecordCompetitorSale("balanced", 3, 1500)
	RecordPlayerSale("Berlin", 2, 1400, 81400)

	assert.Equal(t, 50.0, testutil.ToFloat64(collectors.Simulation.segmentSupply.WithLabelValues("Berlin", "cheap")))
	assert.Equal(t, 30.0, testutil.ToFloat64(collectors.Simulation.segmentSold.WithLabelValues("Berlin", "cheap")))
	assert.Equal(t, 0.5, testutil.ToFloat64(collectors.Simulation.segmentSaturation.WithLabelValues("Berlin", "cheap")))
	assert.Equal(t, 3.0, testutil.ToFloat64(collectors.Financial.competitorUnits.WithLabelValues("balanced")))
	assert.Equal(t, 81400.0, testutil.ToFloat64(collectors.Financial.playerBalance))
}

func TestGlobalRecorders_NoOpWhenDisabled(t *testing.T) {
	SetGlobalSimulationCollector(nil)
	SetGlobalFinancialCollector(nil)

	assert.NotPanics(t, func() {
		RecordMonthProcessed(true, 0.1, true)
		RecordLiquidation("cheap_only", 10)
		RecordWriteDown("cheap_only", 100)
	})
}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)

	_, _ = mw(context.Background(), &processMonthCommand{}, func(context.Context, mediator.Request) (mediator.Response, error) {
		return nil, nil
	})
	_, err := mw(context.Background(), &processMonthCommand{}, func(context.Context, mediator.Request) (mediator.Response, error) {
		return nil, errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("processMonthCommand", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("processMonthCommand", "error")))
}
