package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
)

type pingQuery struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(_ context.Context, request mediator.Request) (mediator.Response, error) {
	return "pong:" + request.(*pingQuery).Value, nil
}

func TestSend_DispatchesThroughMiddlewareInOrder(t *testing.T) {
	med := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](med, pingHandler{}))

	var trace []string
	for _, name := range []string{"outer", "inner"} {
		name := name
		med.RegisterMiddleware(func(ctx context.Context, req mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			trace = append(trace, name)
			return next(ctx, req)
		})
	}

	resp, err := med.Send(context.Background(), &pingQuery{Value: "x"})

	require.NoError(t, err)
	assert.Equal(t, "pong:x", resp)
	assert.Equal(t, []string{"outer", "inner"}, trace)
}

func TestSend_UnknownRequest(t *testing.T) {
	med := mediator.NewMediator()

	_, err := med.Send(context.Background(), &pingQuery{})

	assert.ErrorContains(t, err, "no handler registered")
}

func TestRegister_Duplicate(t *testing.T) {
	med := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](med, pingHandler{}))

	err := mediator.RegisterHandler[*pingQuery](med, pingHandler{})

	assert.Error(t, err)
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "pingQuery", mediator.RequestName(&pingQuery{}))
	assert.Equal(t, "UnknownRequest", mediator.RequestName(nil))
}
