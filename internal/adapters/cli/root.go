package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	sessionID  string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bikesim",
		Short: "Bicycle business simulation",
		Long: `bikesim runs the market simulation of a bicycle business game.

Sessions hold the clock, the player's balance and every market, competitor and
inventory record. Each processed month ages inventory, lets competitors produce
and liquidate, and every third month clears the markets.

Examples:
  bikesim session create --name "Spring league"
  bikesim session use 4b6f...
  bikesim sales decide --market Berlin --bike-type Damenrad --segment standard --quantity 10 --price 420
  bikesim month process
  bikesim month autoplay --months 12
  bikesim market competition --market Berlin --bike-type Damenrad --segment standard
  bikesim ledger cash-flow`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml (default: search ., ./configs, /etc/bikesim)")
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "",
		"Session ID (default: the session set with 'bikesim session use')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewSessionCommand())
	rootCmd.AddCommand(NewMonthCommand())
	rootCmd.AddCommand(NewSalesCommand())
	rootCmd.AddCommand(NewMarketCommand())
	rootCmd.AddCommand(NewInventoryCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewScenarioCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
