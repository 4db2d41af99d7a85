package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapterLogging "github.com/andrescamacho/bikesim-go/internal/adapters/logging"
	"github.com/andrescamacho/bikesim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bikesim-go/internal/adapters/scenario"
	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/internal/infrastructure/config"
	"github.com/andrescamacho/bikesim-go/internal/infrastructure/container"
	"github.com/andrescamacho/bikesim-go/internal/infrastructure/database"
	"github.com/andrescamacho/bikesim-go/internal/infrastructure/lock"
)

// app is everything a command needs to talk to the simulation
type app struct {
	cfg      *config.Config
	mediator mediator.Mediator
}

// withApp loads configuration, opens the database, wires the mediator and runs fn.
// Resources are released when fn returns.
func withApp(fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logCloser, err := adapterLogging.NewLogrusLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var commandMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		collectors, err := metrics.Setup()
		if err != nil {
			return err
		}
		commandMetrics = collectors.Commands

		server := metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		errCh := server.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(shutdownCtx)
		}()
		go func() {
			if err := <-errCh; err != nil {
				logger.Log("ERROR", "Metrics server failed", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	var locker session.Locker = lock.NewLocalLocker()
	if cfg.Redis.Enabled {
		redisLocker, client, err := lock.NewRedisLocker(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		locker = redisLocker
	}

	strategy, err := market.ParseAllocationStrategy(cfg.Simulation.AllocationStrategy)
	if err != nil {
		return err
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Log("DEBUG", "Simulation configured", map[string]interface{}{
		"database":            cfg.Database.Type,
		"seed":                seed,
		"allocation_strategy": string(strategy),
		"sales_cycle_months":  cfg.Simulation.SalesCycleMonths,
		"redis_lock":          cfg.Redis.Enabled,
	})

	policy := competitor.DefaultLiquidationPolicy()
	policy.MinAgeMonths = cfg.Simulation.Liquidation.MinAgeMonths
	policy.AggressiveThreshold = cfg.Simulation.Liquidation.AggressiveThreshold
	policy.ConservativeThreshold = cfg.Simulation.Liquidation.ConservativeThreshold
	policy.WriteDownRate = cfg.Simulation.Liquidation.WriteDownRate

	c, err := container.Build(db, container.Options{
		Random:             shared.NewSeededRandom(seed),
		Locker:             locker,
		Loader:             scenario.NewWorkbookLoader(),
		AllocationStrategy: strategy,
		SalesCycleMonths:   cfg.Simulation.SalesCycleMonths,
		Liquidation:        policy,
		CommandMetrics:     commandMetrics,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize simulation: %w", err)
	}

	return fn(ctx, &app{cfg: cfg, mediator: c.Mediator})
}
