package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
)

// PrometheusMiddleware records duration and outcome of every command and query sent through the mediator
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(mediator.RequestName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}
