package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "bikesim.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "bikesim"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "bikesim"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Simulation defaults
	if cfg.Simulation.SalesCycleMonths == 0 {
		cfg.Simulation.SalesCycleMonths = 3
	}
	if cfg.Simulation.AllocationStrategy == "" {
		cfg.Simulation.AllocationStrategy = "competitive"
	}
	if cfg.Simulation.Liquidation.MinAgeMonths == 0 {
		cfg.Simulation.Liquidation.MinAgeMonths = 6
	}
	if cfg.Simulation.Liquidation.AggressiveThreshold == 0 {
		cfg.Simulation.Liquidation.AggressiveThreshold = 0.6
	}
	if cfg.Simulation.Liquidation.ConservativeThreshold == 0 {
		cfg.Simulation.Liquidation.ConservativeThreshold = 0.4
	}
	if cfg.Simulation.Liquidation.WriteDownRate == 0 {
		cfg.Simulation.Liquidation.WriteDownRate = 0.3
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Redis defaults
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.LockTTL == 0 {
		cfg.Redis.LockTTL = 30 * time.Second
	}

	// Autoplay defaults
	if cfg.Autoplay.MonthsPerSecond == 0 {
		cfg.Autoplay.MonthsPerSecond = 2
	}
	if cfg.Autoplay.Burst == 0 {
		cfg.Autoplay.Burst = 1
	}
}
