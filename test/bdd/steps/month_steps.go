package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	inventoryCmd "github.com/andrescamacho/bikesim-go/internal/application/inventory/commands"
	salesCmd "github.com/andrescamacho/bikesim-go/internal/application/sales/commands"
	sessionCmd "github.com/andrescamacho/bikesim-go/internal/application/session/commands"
	simulationCmd "github.com/andrescamacho/bikesim-go/internal/application/simulation/commands"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/sales"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/internal/infrastructure/container"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

type monthContext struct {
	container  *container.Container
	sessionID  string
	decisionID uint

	last              *simulationCmd.ProcessMonthResponse
	firstSalesBalance *decimal.Decimal
}

func (ctx *monthContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	c, err := helpers.BuildTestContainer(helpers.SharedTestDB, shared.NewSeededRandom(7), market.StrategyCompetitive)
	if err != nil {
		return err
	}
	ctx.container = c
	ctx.sessionID = ""
	ctx.decisionID = 0
	ctx.last = nil
	ctx.firstSalesBalance = nil
	return nil
}

func (ctx *monthContext) aSimulationSessionStartingIn(year, month int) error {
	resp, err := ctx.container.Mediator.Send(context.Background(), &sessionCmd.CreateSessionCommand{
		Name:         "BDD",
		ScenarioPath: "single-market.xlsx",
		StartMonth:   month,
		StartYear:    year,
	})
	if err != nil {
		return err
	}
	ctx.sessionID = resp.(*sessionCmd.CreateSessionResponse).SessionID
	return nil
}

func (ctx *monthContext) thePlayerHoldsBikes(quantity int, bikeType, segment string, cost int64) error {
	_, err := ctx.container.Mediator.Send(context.Background(), &inventoryCmd.AddStockCommand{
		SessionID:    ctx.sessionID,
		BikeTypeName: bikeType,
		Segment:      segment,
		Quantity:     quantity,
		UnitCost:     decimal.NewFromInt(cost),
	})
	return err
}

func (ctx *monthContext) thePlayerDecidesToSell(quantity int, bikeType, segment, marketName string, price int64) error {
	resp, err := ctx.container.Mediator.Send(context.Background(), &salesCmd.SubmitSalesDecisionCommand{
		SessionID:    ctx.sessionID,
		MarketName:   marketName,
		BikeTypeName: bikeType,
		Segment:      segment,
		Quantity:     quantity,
		DesiredPrice: decimal.NewFromInt(price),
	})
	if err != nil {
		return err
	}
	ctx.decisionID = resp.(*salesCmd.SubmitSalesDecisionResponse).DecisionID
	return nil
}

func (ctx *monthContext) theMonthIsProcessed() error {
	resp, err := ctx.container.Mediator.Send(context.Background(), &simulationCmd.ProcessMonthCommand{SessionID: ctx.sessionID})
	if err != nil {
		return err
	}
	ctx.last = resp.(*simulationCmd.ProcessMonthResponse)
	if ctx.last.SalesMonth && ctx.firstSalesBalance == nil {
		balance := ctx.last.Balance
		ctx.firstSalesBalance = &balance
	}
	return nil
}

func (ctx *monthContext) theMonthIsProcessedMoreTimes(times int) error {
	for i := 0; i < times; i++ {
		if err := ctx.theMonthIsProcessed(); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *monthContext) itShouldHaveBeenASalesMonth(not string) error {
	expected := not == ""
	if ctx.last.SalesMonth != expected {
		return fmt.Errorf("%s: expected sales month %v, got %v", ctx.last.Processed, expected, ctx.last.SalesMonth)
	}
	return nil
}

func (ctx *monthContext) marketSegmentsShouldHaveBeenProcessed(expected int) error {
	if ctx.last.Segments != expected {
		return fmt.Errorf("expected %d segments, got %d", expected, ctx.last.Segments)
	}
	return nil
}

func (ctx *monthContext) theSessionShouldBeIn(year, month int) error {
	s, err := ctx.container.Repositories.Sessions.FindByID(context.Background(), ctx.sessionID)
	if err != nil {
		return err
	}
	if want := shared.MustPeriod(month, year); s.Period != want {
		return fmt.Errorf("expected session in %s, got %s", want, s.Period)
	}
	return nil
}

func (ctx *monthContext) decision() (*sales.Decision, error) {
	return ctx.container.Repositories.Sales.FindByID(context.Background(), ctx.decisionID)
}

func (ctx *monthContext) theDecisionShouldBeProcessed() error {
	d, err := ctx.decision()
	if err != nil {
		return err
	}
	if !d.Processed {
		return fmt.Errorf("decision %d is still pending", d.ID)
	}
	return nil
}

func (ctx *monthContext) theDecisionShouldHaveSoldUnits(expected int) error {
	d, err := ctx.decision()
	if err != nil {
		return err
	}
	if d.QuantitySold != expected {
		return fmt.Errorf("expected %d units sold, got %d", expected, d.QuantitySold)
	}
	return nil
}

func (ctx *monthContext) theDecisionUnsoldReasonShouldBe(reason string) error {
	d, err := ctx.decision()
	if err != nil {
		return err
	}
	if string(d.UnsoldReason) != reason {
		return fmt.Errorf("expected unsold reason %q, got %q", reason, d.UnsoldReason)
	}
	return nil
}

func (ctx *monthContext) thePlayerShouldHaveNoUnsoldBikes() error {
	bikes, err := ctx.container.Repositories.Bikes.ListUnsold(context.Background(), ctx.sessionID)
	if err != nil {
		return err
	}
	if len(bikes) != 0 {
		return fmt.Errorf("expected no unsold bikes, got %d", len(bikes))
	}
	return nil
}

func (ctx *monthContext) theLastMonthShouldHaveProcessedDecisions(expected int) error {
	if ctx.last.DecisionsProcessed != expected {
		return fmt.Errorf("expected %d decisions processed, got %d", expected, ctx.last.DecisionsProcessed)
	}
	return nil
}

func (ctx *monthContext) theBalanceShouldNotHaveChangedSinceTheFirstSalesMonth() error {
	if ctx.firstSalesBalance == nil {
		return fmt.Errorf("no sales month was processed")
	}
	if !ctx.last.Balance.Equal(*ctx.firstSalesBalance) {
		return fmt.Errorf("balance moved from %s to %s", ctx.firstSalesBalance, ctx.last.Balance)
	}
	return nil
}

// InitializeMonthScenario registers the month processing steps
func InitializeMonthScenario(sc *godog.ScenarioContext) {
	ctx := &monthContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		return c, ctx.reset()
	})

	sc.Step(`^a simulation session starting in (\d{4})-(\d{2})$`, ctx.aSimulationSessionStartingIn)
	sc.Step(`^the player holds (\d+) "([^"]*)" "([^"]*)" bikes costing (\d+)$`, ctx.thePlayerHoldsBikes)
	sc.Step(`^the player decides to sell (\d+) "([^"]*)" "([^"]*)" bikes in "([^"]*)" at (\d+)$`, ctx.thePlayerDecidesToSell)
	sc.Step(`^the month is processed$`, ctx.theMonthIsProcessed)
	sc.Step(`^the month is processed (\d+) more times$`, ctx.theMonthIsProcessedMoreTimes)
	sc.Step(`^it should (not )?have been a sales month$`, ctx.itShouldHaveBeenASalesMonth)
	sc.Step(`^(\d+) market segments should have been processed$`, ctx.marketSegmentsShouldHaveBeenProcessed)
	sc.Step(`^the session should be in (\d{4})-(\d{2})$`, ctx.theSessionShouldBeIn)
	sc.Step(`^the decision should be processed$`, ctx.theDecisionShouldBeProcessed)
	sc.Step(`^the decision should have sold (\d+) units$`, ctx.theDecisionShouldHaveSoldUnits)
	sc.Step(`^the decision unsold reason should be "([^"]*)"$`, ctx.theDecisionUnsoldReasonShouldBe)
	sc.Step(`^the player should have no unsold bikes$`, ctx.thePlayerShouldHaveNoUnsoldBikes)
	sc.Step(`^the last month should have processed (\d+) decisions$`, ctx.theLastMonthShouldHaveProcessedDecisions)
	sc.Step(`^the balance should not have changed since the first sales month$`, ctx.theBalanceShouldNotHaveChangedSinceTheFirstSalesMonth)
}
