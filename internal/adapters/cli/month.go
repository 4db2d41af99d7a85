package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/bikesim-go/internal/application/simulation/commands"
)

// NewMonthCommand creates the month command with subcommands
func NewMonthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Advance the simulation clock",
		Long: `Process simulated months.

Every month ages inventory, runs competitor production and liquidation.
Sales months (every third month by default) also clear every market segment.

Examples:
  bikesim month process
  bikesim month autoplay --months 12`,
	}

	cmd.AddCommand(newMonthProcessCommand())
	cmd.AddCommand(newMonthAutoplayCommand())
	return cmd
}

func newMonthProcessCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Process the current month",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				response, err := processMonth(ctx, a, id)
				if err != nil {
					return err
				}
				displayMonth(response)
				return nil
			})
		},
	}
}

func newMonthAutoplayCommand() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "autoplay",
		Short: "Process several consecutive months",
		Long: `Process consecutive months, paced by autoplay.months_per_second.

Stops at the first failing month; earlier months stay committed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if months < 1 {
				return fmt.Errorf("--months must be at least 1")
			}
			id, err := resolveSessionID()
			if err != nil {
				return err
			}

			return withApp(func(ctx context.Context, a *app) error {
				limiter := rate.NewLimiter(rate.Limit(a.cfg.Autoplay.MonthsPerSecond), a.cfg.Autoplay.Burst)
				for i := 0; i < months; i++ {
					if err := limiter.Wait(ctx); err != nil {
						if errors.Is(err, context.Canceled) {
							fmt.Printf("Autoplay interrupted after %d months\n", i)
							return nil
						}
						return err
					}

					response, err := processMonth(ctx, a, id)
					if err != nil {
						return fmt.Errorf("month %d of %d: %w", i+1, months, err)
					}
					displayMonth(response)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&months, "months", 3, "Number of months to process")
	return cmd
}

func processMonth(ctx context.Context, a *app, id string) (*commands.ProcessMonthResponse, error) {
	result, err := a.mediator.Send(ctx, &commands.ProcessMonthCommand{SessionID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to process month: %w", err)
	}
	return result.(*commands.ProcessMonthResponse), nil
}

func displayMonth(r *commands.ProcessMonthResponse) {
	kind := "production month"
	if r.SalesMonth {
		kind = "sales month"
	}
	fmt.Printf("%s processed (%s) -> now %s\n", r.Processed, kind, r.Next)
	if r.Aging != nil {
		fmt.Printf("  Aged:        %d bikes, %d lots\n", r.Aging.BikesAged, r.Aging.LotsAged)
	}
	if r.Production != nil {
		fmt.Printf("  Production:  %d units in %d lots\n", r.Production.UnitsProduced, r.Production.LotsTouched)
	}
	if r.Liquidation != nil && r.Liquidation.LotsLiquidated > 0 {
		fmt.Printf("  Liquidation: %d units from %d lots, written down %s\n",
			r.Liquidation.UnitsLiquidated, r.Liquidation.LotsLiquidated, formatEuros(r.Liquidation.WrittenDown))
	}
	if r.SalesMonth {
		fmt.Printf("  Segments:    %d cleared, %d decisions processed\n", r.Segments, r.DecisionsProcessed)
		fmt.Printf("  Player:      %d units sold for %s\n", r.PlayerUnitsSold, formatEuros(r.PlayerRevenue))
		fmt.Printf("  Competitors: %d units sold\n", r.CompetitorUnits)
	}
	fmt.Printf("  Balance:     %s\n", formatEuros(r.Balance))
}
