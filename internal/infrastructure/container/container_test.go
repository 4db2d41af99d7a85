package container_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryCmd "github.com/andrescamacho/bikesim-go/internal/application/inventory/commands"
	ledgerQuery "github.com/andrescamacho/bikesim-go/internal/application/ledger/queries"
	marketQuery "github.com/andrescamacho/bikesim-go/internal/application/market/queries"
	salesCmd "github.com/andrescamacho/bikesim-go/internal/application/sales/commands"
	salesQuery "github.com/andrescamacho/bikesim-go/internal/application/sales/queries"
	sessionCmd "github.com/andrescamacho/bikesim-go/internal/application/session/commands"
	sessionQuery "github.com/andrescamacho/bikesim-go/internal/application/session/queries"
	simulationCmd "github.com/andrescamacho/bikesim-go/internal/application/simulation/commands"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/internal/infrastructure/container"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

func newContainer(t *testing.T, strategy market.AllocationStrategy) *container.Container {
	t.Helper()
	c, err := helpers.BuildTestContainer(helpers.NewTestDB(t), shared.NewSeededRandom(1), strategy)
	require.NoError(t, err)
	return c
}

func createSession(t *testing.T, c *container.Container, month, year int) string {
	t.Helper()
	resp, err := c.Mediator.Send(context.Background(), &sessionCmd.CreateSessionCommand{
		Name:         "Test",
		ScenarioPath: "single-market.xlsx",
		StartMonth:   month,
		StartYear:    year,
	})
	require.NoError(t, err)
	return resp.(*sessionCmd.CreateSessionResponse).SessionID
}

func processMonth(t *testing.T, c *container.Container, sessionID string) *simulationCmd.ProcessMonthResponse {
	t.Helper()
	resp, err := c.Mediator.Send(context.Background(), &simulationCmd.ProcessMonthCommand{SessionID: sessionID})
	require.NoError(t, err)
	return resp.(*simulationCmd.ProcessMonthResponse)
}

func TestBuild_RequiresRandomSource(t *testing.T) {
	_, err := container.Build(helpers.NewTestDB(t), container.Options{})
	assert.Error(t, err)
}

func TestCreateSession_DefaultScenario(t *testing.T) {
	// Arrange
	c := newContainer(t, market.StrategyCompetitive)

	// Act
	resp, err := c.Mediator.Send(context.Background(), &sessionCmd.CreateSessionCommand{Name: "Default"})

	// Assert
	require.NoError(t, err)
	created := resp.(*sessionCmd.CreateSessionResponse)
	assert.Equal(t, "2024-01", created.Period)
	assert.Equal(t, "80000.00", created.Balance.StringFixed(2))
	assert.Equal(t, 5, created.Markets)
	assert.Equal(t, 7, created.BikeTypes)
	assert.Equal(t, len(competitor.DefaultRoster(created.SessionID)), created.Competitors)

	listed, err := c.Mediator.Send(context.Background(), &sessionQuery.ListSessionsQuery{})
	require.NoError(t, err)
	require.Len(t, listed.(*sessionQuery.ListSessionsResponse).Sessions, 1)
}

func TestCreateSession_RejectsEmptyName(t *testing.T) {
	c := newContainer(t, market.StrategyCompetitive)

	_, err := c.Mediator.Send(context.Background(), &sessionCmd.CreateSessionCommand{})

	assert.Error(t, err)
}

func TestProcessMonth_OffCycleMonthsOnlyAge(t *testing.T) {
	// Arrange
	c := newContainer(t, market.StrategyCompetitive)
	sessionID := createSession(t, c, 1, 2024)

	// Act
	january := processMonth(t, c, sessionID)
	february := processMonth(t, c, sessionID)

	// Assert
	for _, resp := range []*simulationCmd.ProcessMonthResponse{january, february} {
		assert.False(t, resp.SalesMonth)
		assert.Zero(t, resp.Segments)
	}
	assert.Equal(t, shared.MustPeriod(2, 2024), january.Next)
	assert.Equal(t, shared.MustPeriod(3, 2024), february.Next)

	competitions, err := c.Repositories.Competition.ListForPeriod(context.Background(), sessionID, shared.MustPeriod(1, 2024))
	require.NoError(t, err)
	assert.Empty(t, competitions)
}

func TestProcessMonth_SalesMonthRunsEverySegment(t *testing.T) {
	// Arrange
	c := newContainer(t, market.StrategyCompetitive)
	sessionID := createSession(t, c, 3, 2024)

	// Act
	resp := processMonth(t, c, sessionID)

	// Assert
	assert.True(t, resp.SalesMonth)
	assert.Equal(t, len(market.AllSegments), resp.Segments)
	competitions, err := c.Repositories.Competition.ListForPeriod(context.Background(), sessionID, shared.MustPeriod(3, 2024))
	require.NoError(t, err)
	assert.Len(t, competitions, len(market.AllSegments))
}

func TestProcessMonth_DecemberRollsIntoJanuary(t *testing.T) {
	c := newContainer(t, market.StrategyCompetitive)
	sessionID := createSession(t, c, 12, 2024)

	resp := processMonth(t, c, sessionID)

	assert.True(t, resp.SalesMonth)
	assert.Equal(t, shared.MustPeriod(1, 2025), resp.Next)
	stored, err := c.Repositories.Sessions.FindByID(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, shared.MustPeriod(1, 2025), stored.Period)
}

func TestSalesDecision_CappedByAvailableStock(t *testing.T) {
	// Arrange
	ctx := context.Background()
	c := newContainer(t, market.StrategyPriceOrder)
	sessionID := createSession(t, c, 3, 2024)

	_, err := c.Mediator.Send(ctx, &inventoryCmd.AddStockCommand{
		SessionID: sessionID, BikeTypeName: "City Bike", Segment: "standard", Quantity: 3, UnitCost: decimal.NewFromInt(350),
	})
	require.NoError(t, err)

	transport := decimal.NewFromInt(10)
	submitted, err := c.Mediator.Send(ctx, &salesCmd.SubmitSalesDecisionCommand{
		SessionID: sessionID, MarketName: "Hamburg", BikeTypeName: "City Bike", Segment: "standard",
		Quantity: 10, DesiredPrice: decimal.NewFromInt(600), TransportCost: &transport,
	})
	require.NoError(t, err)
	decisionID := submitted.(*salesCmd.SubmitSalesDecisionResponse).DecisionID

	// Act
	resp := processMonth(t, c, sessionID)

	// Assert
	assert.Equal(t, 1, resp.DecisionsProcessed)
	assert.Equal(t, 3, resp.PlayerUnitsSold)
	// first unit carries the transport cost
	assert.Equal(t, "1790.00", resp.PlayerRevenue.StringFixed(2))
	assert.Equal(t, "81790.00", resp.Balance.StringFixed(2))

	decision, err := c.Repositories.Sales.FindByID(ctx, decisionID)
	require.NoError(t, err)
	assert.True(t, decision.Processed)
	assert.Equal(t, 3, decision.QuantitySold)
	assert.Equal(t, sales.ReasonInsufficientInventory, decision.UnsoldReason)

	unsold, err := c.Repositories.Bikes.ListUnsold(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, unsold)
}

func TestProcessMonth_ProcessedDecisionsAreNotReprocessed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	c := newContainer(t, market.StrategyPriceOrder)
	sessionID := createSession(t, c, 3, 2024)
	_, err := c.Mediator.Send(ctx, &inventoryCmd.AddStockCommand{
		SessionID: sessionID, BikeTypeName: "City Bike", Segment: "cheap", Quantity: 2, UnitCost: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	_, err = c.Mediator.Send(ctx, &salesCmd.SubmitSalesDecisionCommand{
		SessionID: sessionID, MarketName: "Hamburg", BikeTypeName: "City Bike", Segment: "cheap",
		Quantity: 2, DesiredPrice: decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	first := processMonth(t, c, sessionID)
	require.Equal(t, 1, first.DecisionsProcessed)

	// Act: April, May and the next sales month June
	var later []*simulationCmd.ProcessMonthResponse
	for i := 0; i < 3; i++ {
		later = append(later, processMonth(t, c, sessionID))
	}

	// Assert
	for _, resp := range later {
		assert.Zero(t, resp.DecisionsProcessed)
		assert.Zero(t, resp.PlayerUnitsSold)
	}
	assert.True(t, later[2].SalesMonth)
	assert.True(t, first.Balance.Equal(later[2].Balance))
}

func TestQueries_AfterSalesMonth(t *testing.T) {
	// Arrange
	ctx := context.Background()
	c := newContainer(t, market.StrategyPriceOrder)
	sessionID := createSession(t, c, 3, 2024)
	_, err := c.Mediator.Send(ctx, &inventoryCmd.AddStockCommand{
		SessionID: sessionID, BikeTypeName: "City Bike", Segment: "standard", Quantity: 2, UnitCost: decimal.NewFromInt(350),
	})
	require.NoError(t, err)
	_, err = c.Mediator.Send(ctx, &salesCmd.SubmitSalesDecisionCommand{
		SessionID: sessionID, MarketName: "Hamburg", BikeTypeName: "City Bike", Segment: "standard",
		Quantity: 2, DesiredPrice: decimal.NewFromInt(600),
	})
	require.NoError(t, err)

	pendingResp, err := c.Mediator.Send(ctx, &salesQuery.GetPendingDecisionsSummaryQuery{SessionID: sessionID})
	require.NoError(t, err)
	pending := pendingResp.(*salesQuery.GetPendingDecisionsSummaryResponse)
	assert.Equal(t, 1, pending.TotalDecisions)
	assert.Equal(t, 2, pending.TotalQuantity)

	// Act
	processMonth(t, c, sessionID)

	// Assert
	pendingResp, err = c.Mediator.Send(ctx, &salesQuery.GetPendingDecisionsSummaryQuery{SessionID: sessionID})
	require.NoError(t, err)
	assert.Zero(t, pendingResp.(*salesQuery.GetPendingDecisionsSummaryResponse).TotalDecisions)

	recentResp, err := c.Mediator.Send(ctx, &salesQuery.GetRecentSalesResultsQuery{SessionID: sessionID})
	require.NoError(t, err)
	recent := recentResp.(*salesQuery.GetRecentSalesResultsResponse)
	require.Len(t, recent.Results, 1)
	assert.Equal(t, 2, recent.Results[0].QuantitySold)

	march := shared.MustPeriod(3, 2024)
	competitionResp, err := c.Mediator.Send(ctx, &marketQuery.GetMarketCompetitionQuery{
		SessionID: sessionID, MarketName: "Hamburg", BikeTypeName: "City Bike", Segment: "standard", Period: &march,
	})
	require.NoError(t, err)
	competition := competitionResp.(*marketQuery.GetMarketCompetitionResponse)
	assert.True(t, competition.HasSnapshot)
	assert.Equal(t, 2, competition.PlayerUnitsSold)
	assert.Equal(t, 2, competition.SalesVolume)

	txResp, err := c.Mediator.Send(ctx, &ledgerQuery.GetTransactionsQuery{SessionID: sessionID, PlayerOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, txResp.(*ledgerQuery.GetTransactionsResponse).Total)

	flowResp, err := c.Mediator.Send(ctx, &ledgerQuery.GetCashFlowQuery{SessionID: sessionID, Period: &march})
	require.NoError(t, err)
	flow := flowResp.(*ledgerQuery.GetCashFlowResponse)
	require.Len(t, flow.Categories, 1)
	assert.Equal(t, "sales", flow.Categories[0].Category)
	assert.Equal(t, "player", flow.Categories[0].Owner)
	assert.Equal(t, 2, flow.Categories[0].Transactions)
}
