package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bikesim-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration settings",
		Long: `Show bikesim configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (BIKESIM_* prefix, DATABASE_URL)
2. Config file (config.yaml)
3. Default values

The default session is stored in ~/.bikesim/config.json

Example:
  bikesim config show`,
	}

	cmd.AddCommand(newConfigShowCommand())
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("bikesim Configuration")
			fmt.Println("=====================")
			fmt.Println()
			fmt.Println("User Preferences:")
			if userCfg.DefaultSessionID != "" {
				fmt.Printf("  Default Session: %s\n", userCfg.DefaultSessionID)
			} else {
				fmt.Println("  Default Session: (not set)")
			}
			fmt.Printf("  Config File:     %s\n\n", userConfigHandler.GetConfigPath())

			fmt.Println("Database:")
			fmt.Printf("  Type:    %s\n", cfg.Database.Type)
			if cfg.Database.Type == "sqlite" {
				fmt.Printf("  Path:    %s\n", cfg.Database.Path)
			} else {
				fmt.Printf("  Host:    %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Printf("  Name:    %s\n", cfg.Database.Name)
			}
			fmt.Printf("  Tracing: %t\n\n", cfg.Database.Tracing)

			fmt.Println("Simulation:")
			fmt.Printf("  Seed:                %d\n", cfg.Simulation.Seed)
			fmt.Printf("  Sales Cycle:         every %d months\n", cfg.Simulation.SalesCycleMonths)
			fmt.Printf("  Allocation Strategy: %s\n", cfg.Simulation.AllocationStrategy)
			fmt.Printf("  Liquidation:         age >= %d, aggressive > %.2f, write-down %.0f%%\n\n",
				cfg.Simulation.Liquidation.MinAgeMonths,
				cfg.Simulation.Liquidation.AggressiveThreshold,
				cfg.Simulation.Liquidation.WriteDownRate*100)

			fmt.Println("Logging:")
			fmt.Printf("  Level:  %s\n", cfg.Logging.Level)
			fmt.Printf("  Format: %s\n\n", cfg.Logging.Format)

			fmt.Println("Metrics:")
			fmt.Printf("  Enabled: %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Listen:  %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}
			fmt.Println()

			fmt.Println("Redis Lock:")
			fmt.Printf("  Enabled: %t\n", cfg.Redis.Enabled)
			if cfg.Redis.Enabled {
				fmt.Printf("  Addr:    %s (ttl %s)\n", cfg.Redis.Addr, cfg.Redis.LockTTL)
			}
			return nil
		},
	}
}
