package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bikesim-go/internal/application/simulation/services"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/ledger"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/test/helpers"
)

type liquidationContext struct {
	sessionRepo    *persistence.GormSessionRepository
	marketRepo     *persistence.GormMarketRepository
	competitorRepo *persistence.GormCompetitorRepository
	txRepo         *persistence.GormTransactionRepository

	session       *session.Session
	competitor    *competitor.Competitor
	lot           *competitor.ProductionLot
	startingStock int
	startingFunds decimal.Decimal
	result        *services.LiquidationResult
}

func (ctx *liquidationContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	db := helpers.SharedTestDB
	ctx.sessionRepo = persistence.NewGormSessionRepository(db)
	ctx.marketRepo = persistence.NewGormMarketRepository(db)
	ctx.competitorRepo = persistence.NewGormCompetitorRepository(db)
	ctx.txRepo = persistence.NewGormTransactionRepository(db)
	ctx.session = nil
	ctx.competitor = nil
	ctx.lot = nil
	ctx.startingStock = 0
	ctx.startingFunds = decimal.Zero
	ctx.result = nil
	return nil
}

func (ctx *liquidationContext) aSessionWhoseCurrentMonthIs(year, month int) error {
	period, err := shared.NewPeriod(month, year)
	if err != nil {
		return err
	}
	s, err := session.NewSession("liquidation", period, decimal.NewFromInt(80000))
	if err != nil {
		return err
	}
	if err := ctx.sessionRepo.Add(context.Background(), s); err != nil {
		return err
	}
	ctx.session = s
	return nil
}

func (ctx *liquidationContext) aCompetitorWithAggressivenessAndResources(name string, aggressiveness float64, resources int64) error {
	c, err := competitor.NewCompetitor(
		ctx.session.ID, name, competitor.StrategyCheapOnly,
		decimal.NewFromInt(resources), 30, aggressiveness, 0.8,
	)
	if err != nil {
		return err
	}
	if err := ctx.competitorRepo.Save(context.Background(), c); err != nil {
		return err
	}
	ctx.competitor = c
	ctx.startingFunds = c.FinancialResources
	return nil
}

func (ctx *liquidationContext) theCompetitorHoldsUnits(quantity int, bikeTypeName, segment string, cost int64, age int) error {
	bg := context.Background()

	bikeType, err := market.NewBikeType(ctx.session.ID, bikeTypeName, 3, 2)
	if err != nil {
		return err
	}
	if err := ctx.marketRepo.SaveBikeType(bg, bikeType); err != nil {
		return err
	}

	seg, err := market.ParsePriceSegment(segment)
	if err != nil {
		return err
	}

	lot := competitor.NewProductionLot(ctx.competitor.ID, bikeType.ID, seg, ctx.session.Period.Minus(age), quantity, decimal.NewFromInt(cost))
	lot.RecordYield(quantity)
	lot.UpdateAge(ctx.session.Period)
	if err := ctx.competitorRepo.SaveLot(bg, lot); err != nil {
		return err
	}
	ctx.lot = lot
	ctx.startingStock = lot.QuantityInInventory
	return nil
}

func (ctx *liquidationContext) theLiquidationPassRuns() error {
	service := services.NewLiquidationService(
		ctx.competitorRepo,
		ctx.competitorRepo,
		ctx.txRepo,
		competitor.DefaultLiquidationPolicy(),
		shared.NewSeededRandom(42),
		shared.NewMockClock(time.Date(ctx.session.Period.Year, time.Month(ctx.session.Period.Month), 1, 0, 0, 0, 0, time.UTC)),
	)
	result, err := service.Run(context.Background(), ctx.session.ID, ctx.session.Period)
	if err != nil {
		return err
	}
	ctx.result = result
	return nil
}

func (ctx *liquidationContext) betweenUnitsShouldBeLiquidated(low, high int) error {
	if got := ctx.result.UnitsLiquidated; got < low || got > high {
		return fmt.Errorf("expected between %d and %d units liquidated, got %d", low, high, got)
	}
	return nil
}

func (ctx *liquidationContext) unitsShouldBeLiquidated(expected int) error {
	if got := ctx.result.UnitsLiquidated; got != expected {
		return fmt.Errorf("expected %d units liquidated, got %d", expected, got)
	}
	return nil
}

func (ctx *liquidationContext) theLotInventoryShouldDropByTheLiquidatedQuantity() error {
	lot, err := ctx.competitorRepo.FindLotByID(context.Background(), ctx.lot.ID)
	if err != nil {
		return err
	}
	if want := ctx.startingStock - ctx.result.UnitsLiquidated; lot.QuantityInInventory != want {
		return fmt.Errorf("expected %d units left in the lot, got %d", want, lot.QuantityInInventory)
	}
	return nil
}

func (ctx *liquidationContext) theCompetitorResourcesShouldDropBy(cost int64, rate float64) error {
	c, err := ctx.competitorRepo.FindByID(context.Background(), ctx.session.ID, ctx.competitor.ID)
	if err != nil {
		return err
	}
	expected := shared.RoundMoney(decimal.NewFromInt(cost).
		Mul(decimal.NewFromInt(int64(ctx.result.UnitsLiquidated))).
		Mul(decimal.NewFromFloat(rate)))
	if drop := ctx.startingFunds.Sub(c.FinancialResources); !drop.Equal(expected) {
		return fmt.Errorf("expected resources to drop by %s, dropped by %s", expected, drop)
	}
	return nil
}

func (ctx *liquidationContext) aLiquidationExpenseShouldBeRecordedInTheLedger() error {
	category := ledger.CategoryLiquidation
	opts := ledger.DefaultQueryOptions()
	opts.Category = &category
	entries, err := ctx.txRepo.FindBySession(context.Background(), ctx.session.ID, opts)
	if err != nil {
		return err
	}
	if len(entries) != 1 {
		return fmt.Errorf("expected 1 liquidation entry, got %d", len(entries))
	}
	if !entries[0].IsCompetitorEntry() {
		return fmt.Errorf("liquidation entry is not attributed to the competitor")
	}
	if !entries[0].Amount().IsNegative() {
		return fmt.Errorf("expected a negative amount, got %s", entries[0].Amount())
	}
	return nil
}

func (ctx *liquidationContext) noCompetitorSaleShouldBeRecorded() error {
	var count int64
	if err := helpers.SharedTestDB.Model(&persistence.CompetitorSaleModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("expected no competitor sales, got %d", count)
	}
	return nil
}

func (ctx *liquidationContext) theLotShouldBeHeld() error {
	if ctx.result.LotsHeld != 1 {
		return fmt.Errorf("expected 1 held lot, got %d", ctx.result.LotsHeld)
	}
	return nil
}

// InitializeLiquidationScenario registers the competitor liquidation steps
func InitializeLiquidationScenario(sc *godog.ScenarioContext) {
	ctx := &liquidationContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		return c, ctx.reset()
	})

	sc.Step(`^a session whose current month is (\d{4})-(\d{2})$`, ctx.aSessionWhoseCurrentMonthIs)
	sc.Step(`^a competitor "([^"]*)" with aggressiveness ([\d.]+) and resources (\d+)$`, ctx.aCompetitorWithAggressivenessAndResources)
	sc.Step(`^the competitor holds (\d+) "([^"]*)" "([^"]*)" units costing (\d+) produced (\d+) months ago$`, ctx.theCompetitorHoldsUnits)
	sc.Step(`^the liquidation pass runs$`, ctx.theLiquidationPassRuns)
	sc.Step(`^between (\d+) and (\d+) units should be liquidated$`, ctx.betweenUnitsShouldBeLiquidated)
	sc.Step(`^(\d+) units should be liquidated$`, ctx.unitsShouldBeLiquidated)
	sc.Step(`^the lot inventory should drop by the liquidated quantity$`, ctx.theLotInventoryShouldDropByTheLiquidatedQuantity)
	sc.Step(`^the competitor resources should drop by (\d+) times the liquidated quantity times ([\d.]+)$`, ctx.theCompetitorResourcesShouldDropBy)
	sc.Step(`^a liquidation expense should be recorded in the ledger$`, ctx.aLiquidationExpenseShouldBeRecordedInTheLedger)
	sc.Step(`^no competitor sale should be recorded$`, ctx.noCompetitorSaleShouldBeRecorded)
	sc.Step(`^the lot should be held$`, ctx.theLotShouldBeHeld)
}
