package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bikesim-go/internal/application/market/queries"
)

// NewMarketCommand creates the market command with subcommands
func NewMarketCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Inspect market competition",
	}

	cmd.AddCommand(newMarketCompetitionCommand())
	return cmd
}

func newMarketCompetitionCommand() *cobra.Command {
	var (
		marketName string
		bikeType   string
		segment    string
		month      int
		year       int
	)

	cmd := &cobra.Command{
		Use:   "competition",
		Short: "Show the competition snapshot of a market segment",
		Long: `Show demand, supply, saturation and the observed sales of one market segment.

The period defaults to the most recent sales month before the session's current month.

Example:
  bikesim market competition --market Berlin --bike-type Damenrad --segment standard --month 3 --year 2024`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			period, err := parsePeriodFlags(month, year)
			if err != nil {
				return err
			}

			return withApp(func(ctx context.Context, a *app) error {
				result, err := a.mediator.Send(ctx, &queries.GetMarketCompetitionQuery{
					SessionID:    id,
					MarketName:   marketName,
					BikeTypeName: bikeType,
					Segment:      segment,
					Period:       period,
				})
				if err != nil {
					return fmt.Errorf("failed to load competition: %w", err)
				}
				displayCompetition(result.(*queries.GetMarketCompetitionResponse))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&marketName, "market", "", "Market name [required]")
	cmd.Flags().StringVar(&bikeType, "bike-type", "", "Bike type name [required]")
	cmd.Flags().StringVar(&segment, "segment", "", "Price segment [required]")
	cmd.Flags().IntVar(&month, "month", 0, "Month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "Year")
	cmd.MarkFlagRequired("market")
	cmd.MarkFlagRequired("bike-type")
	cmd.MarkFlagRequired("segment")

	return cmd
}

func displayCompetition(r *queries.GetMarketCompetitionResponse) {
	fmt.Printf("\n%s / %s / %s  (%s)\n", r.Market, r.BikeType, r.Segment, r.Period)
	fmt.Println("─────────────────────────────────────────────────────────────")
	if !r.HasSnapshot {
		fmt.Println("No competition snapshot for this period")
	} else {
		fmt.Printf("  Estimated demand: %d\n", r.EstimatedDemand)
		fmt.Printf("  Maximum volume:   %d\n", r.MaximumVolume)
		fmt.Printf("  Total supply:     %d\n", r.TotalSupply)
		fmt.Printf("  Sales volume:     %d\n", r.SalesVolume)
		fmt.Printf("  Saturation:       %.2f\n", r.SaturationLevel)
		fmt.Printf("  Price pressure:   %+.2f\n", r.PricePressure)
		fmt.Printf("  Average price:    %s\n", formatEuros(r.AveragePrice))
		fmt.Printf("  Optimal price:    %s\n", formatEuros(r.OptimalPrice))
	}

	fmt.Printf("\n  Player: %d units, %s, market share %.1f%%\n",
		r.PlayerUnitsSold, formatEuros(r.PlayerRevenue), r.PlayerMarketShare)

	if len(r.CompetitorSales) == 0 {
		fmt.Println("  No competitor sales")
		return
	}
	fmt.Printf("  Average competitor price: %s\n\n", formatEuros(r.AverageCompetitorPrice))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Competitor\tOffered\tSold\tPrice\tRevenue")
	for _, s := range r.CompetitorSales {
		fmt.Fprintf(w, "  %s\t%d\t%d\t%s\t%s\n",
			s.Competitor, s.QuantityOffered, s.QuantitySold, formatEuros(s.SalePrice), formatEuros(s.TotalRevenue))
	}
	w.Flush()
}
