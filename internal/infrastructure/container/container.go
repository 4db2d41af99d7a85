package container

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/bikesim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bikesim-go/internal/adapters/persistence"
	inventoryCmd "github.com/andrescamacho/bikesim-go/internal/application/inventory/commands"
	ledgerQuery "github.com/andrescamacho/bikesim-go/internal/application/ledger/queries"
	marketQuery "github.com/andrescamacho/bikesim-go/internal/application/market/queries"
	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	salesCmd "github.com/andrescamacho/bikesim-go/internal/application/sales/commands"
	salesQuery "github.com/andrescamacho/bikesim-go/internal/application/sales/queries"
	sessionCmd "github.com/andrescamacho/bikesim-go/internal/application/session/commands"
	sessionQuery "github.com/andrescamacho/bikesim-go/internal/application/session/queries"
	simulationCmd "github.com/andrescamacho/bikesim-go/internal/application/simulation/commands"
	"github.com/andrescamacho/bikesim-go/internal/application/simulation/services"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

// Options tune how the simulation is assembled
type Options struct {
	Random             shared.RandomSource
	Clock              shared.Clock
	Locker             session.Locker
	Loader             sessionCmd.ScenarioLoader
	AllocationStrategy market.AllocationStrategy
	SalesCycleMonths   int
	Liquidation        competitor.LiquidationPolicy
	// CommandMetrics is nil when metrics are disabled
	CommandMetrics *metrics.CommandMetricsCollector
}

// Repositories exposes the GORM repositories backing the simulation
type Repositories struct {
	Sessions     *persistence.GormSessionRepository
	Markets      *persistence.GormMarketRepository
	DemandConfig *persistence.GormDemandConfigRepository
	Competition  *persistence.GormCompetitionRepository
	Competitors  *persistence.GormCompetitorRepository
	Bikes        *persistence.GormProducedBikeRepository
	Sales        *persistence.GormSalesRepository
	Transactions *persistence.GormTransactionRepository
}

// Container holds the mediator with every command and query handler registered
type Container struct {
	Mediator     mediator.Mediator
	Repositories Repositories
	UnitOfWork   *persistence.GormUnitOfWork
}

// Build wires repositories, services and handlers on top of db
func Build(db *gorm.DB, opts Options) (*Container, error) {
	if opts.Random == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	if opts.AllocationStrategy == "" {
		opts.AllocationStrategy = market.StrategyCompetitive
	}
	if opts.Liquidation.MinAgeMonths == 0 {
		opts.Liquidation = competitor.DefaultLiquidationPolicy()
	}

	// 1. Repositories
	repos := Repositories{
		Sessions:     persistence.NewGormSessionRepository(db),
		Markets:      persistence.NewGormMarketRepository(db),
		DemandConfig: persistence.NewGormDemandConfigRepository(db),
		Competition:  persistence.NewGormCompetitionRepository(db),
		Competitors:  persistence.NewGormCompetitorRepository(db),
		Bikes:        persistence.NewGormProducedBikeRepository(db),
		Sales:        persistence.NewGormSalesRepository(db),
		Transactions: persistence.NewGormTransactionRepository(db),
	}
	uow := persistence.NewGormUnitOfWork(db)

	// 2. Simulation services
	aging := services.NewInventoryAgingService(repos.Bikes, repos.Competitors)
	planner := services.NewProductionPlanner(repos.Competitors, repos.Competitors, repos.Markets, opts.Random)
	liquidation := services.NewLiquidationService(
		repos.Competitors, repos.Competitors, repos.Transactions, opts.Liquidation, opts.Random, opts.Clock,
	)
	volume := services.NewVolumeEngine(repos.DemandConfig, repos.Competition, repos.DemandConfig, opts.Random)
	collector := services.NewOfferCollector(repos.Bikes, repos.Competitors, opts.Random)
	executor := services.NewSaleExecutor(
		repos.Bikes, repos.Competitors, repos.Competitors, repos.Competitors, repos.Sales, repos.Transactions, opts.Clock,
	)
	segments := services.NewSegmentProcessor(collector, executor, repos.Sales, repos.Competition)

	allocator, err := market.NewAllocator(opts.AllocationStrategy, opts.Random)
	if err != nil {
		return nil, err
	}

	// 3. Mediator
	med := mediator.NewMediator()
	if opts.CommandMetrics != nil {
		med.RegisterMiddleware(metrics.PrometheusMiddleware(opts.CommandMetrics))
	}

	// 4. Handlers
	createSession := sessionCmd.NewCreateSessionHandler(sessionCmd.CreateSessionDeps{
		UnitOfWork:     uow,
		SessionRepo:    repos.Sessions,
		MarketRepo:     repos.Markets,
		DemandRepo:     repos.DemandConfig,
		StrategyStore:  repos.DemandConfig,
		CompetitorRepo: repos.Competitors,
		BikeRepo:       repos.Bikes,
		Loader:         opts.Loader,
	})
	if err := mediator.RegisterHandler[*sessionCmd.CreateSessionCommand](med, createSession); err != nil {
		return nil, fmt.Errorf("failed to register CreateSession handler: %w", err)
	}

	listSessions := sessionQuery.NewListSessionsHandler(repos.Sessions)
	if err := mediator.RegisterHandler[*sessionQuery.ListSessionsQuery](med, listSessions); err != nil {
		return nil, fmt.Errorf("failed to register ListSessions handler: %w", err)
	}

	processMonth := simulationCmd.NewProcessMonthHandler(simulationCmd.ProcessMonthDeps{
		UnitOfWork:       uow,
		Locker:           opts.Locker,
		SessionRepo:      repos.Sessions,
		MarketRepo:       repos.Markets,
		CompetitorRepo:   repos.Competitors,
		DecisionRepo:     repos.Sales,
		Aging:            aging,
		Planner:          planner,
		Liquidation:      liquidation,
		Volume:           volume,
		Segments:         segments,
		Allocator:        allocator,
		SalesCycleMonths: opts.SalesCycleMonths,
	})
	if err := mediator.RegisterHandler[*simulationCmd.ProcessMonthCommand](med, processMonth); err != nil {
		return nil, fmt.Errorf("failed to register ProcessMonth handler: %w", err)
	}

	submitDecision := salesCmd.NewSubmitSalesDecisionHandler(repos.Sessions, repos.Markets, repos.Sales)
	if err := mediator.RegisterHandler[*salesCmd.SubmitSalesDecisionCommand](med, submitDecision); err != nil {
		return nil, fmt.Errorf("failed to register SubmitSalesDecision handler: %w", err)
	}

	processDecisions := salesCmd.NewProcessSalesDecisionsHandler(salesCmd.ProcessSalesDecisionsDeps{
		UnitOfWork:     uow,
		Locker:         opts.Locker,
		SessionRepo:    repos.Sessions,
		MarketRepo:     repos.Markets,
		CompetitorRepo: repos.Competitors,
		DecisionRepo:   repos.Sales,
		Segments:       segments,
		Random:         opts.Random,
	})
	if err := mediator.RegisterHandler[*salesCmd.ProcessSalesDecisionsCommand](med, processDecisions); err != nil {
		return nil, fmt.Errorf("failed to register ProcessSalesDecisions handler: %w", err)
	}

	pending := salesQuery.NewGetPendingDecisionsSummaryHandler(repos.Sessions, repos.Markets, repos.Sales)
	if err := mediator.RegisterHandler[*salesQuery.GetPendingDecisionsSummaryQuery](med, pending); err != nil {
		return nil, fmt.Errorf("failed to register GetPendingDecisionsSummary handler: %w", err)
	}

	recent := salesQuery.NewGetRecentSalesResultsHandler(repos.Sessions, repos.Sales)
	if err := mediator.RegisterHandler[*salesQuery.GetRecentSalesResultsQuery](med, recent); err != nil {
		return nil, fmt.Errorf("failed to register GetRecentSalesResults handler: %w", err)
	}

	competition := marketQuery.NewGetMarketCompetitionHandler(
		repos.Sessions, repos.Markets, repos.Competition, repos.Competitors, repos.Competitors, repos.Sales,
	)
	if err := mediator.RegisterHandler[*marketQuery.GetMarketCompetitionQuery](med, competition); err != nil {
		return nil, fmt.Errorf("failed to register GetMarketCompetition handler: %w", err)
	}

	addStock := inventoryCmd.NewAddStockHandler(repos.Sessions, repos.Markets, repos.Bikes)
	if err := mediator.RegisterHandler[*inventoryCmd.AddStockCommand](med, addStock); err != nil {
		return nil, fmt.Errorf("failed to register AddStock handler: %w", err)
	}

	transactions := ledgerQuery.NewGetTransactionsHandler(repos.Transactions)
	if err := mediator.RegisterHandler[*ledgerQuery.GetTransactionsQuery](med, transactions); err != nil {
		return nil, fmt.Errorf("failed to register GetTransactions handler: %w", err)
	}

	cashFlow := ledgerQuery.NewGetCashFlowHandler(repos.Transactions)
	if err := mediator.RegisterHandler[*ledgerQuery.GetCashFlowQuery](med, cashFlow); err != nil {
		return nil, fmt.Errorf("failed to register GetCashFlow handler: %w", err)
	}

	return &Container{Mediator: med, Repositories: repos, UnitOfWork: uow}, nil
}
