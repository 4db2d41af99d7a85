package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bikesim-go/internal/application/sales/commands"
	"github.com/andrescamacho/bikesim-go/internal/application/sales/queries"
)

// NewSalesCommand creates the sales command with subcommands
func NewSalesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Submit and inspect sales decisions",
		Long: `Sales decisions offer player bikes in a market segment at a desired price.

Decisions wait until the next sales month, or until 'bikesim sales process'
clears them immediately with the price-order allocation.

Examples:
  bikesim sales decide --market Berlin --bike-type Damenrad --segment standard --quantity 10 --price 420
  bikesim sales pending
  bikesim sales process
  bikesim sales results --months 6`,
	}

	cmd.AddCommand(newSalesDecideCommand())
	cmd.AddCommand(newSalesProcessCommand())
	cmd.AddCommand(newSalesPendingCommand())
	cmd.AddCommand(newSalesResultsCommand())
	return cmd
}

func newSalesDecideCommand() *cobra.Command {
	var (
		marketName string
		bikeType   string
		segment    string
		quantity   int
		price      string
		transport  string
	)

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Submit a sales decision for the current month",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			desired, err := parseMoney("price", price)
			if err != nil {
				return err
			}

			command := &commands.SubmitSalesDecisionCommand{
				SessionID:    id,
				MarketName:   marketName,
				BikeTypeName: bikeType,
				Segment:      segment,
				Quantity:     quantity,
				DesiredPrice: desired,
			}
			if transport != "" {
				cost, err := parseMoney("transport", transport)
				if err != nil {
					return err
				}
				command.TransportCost = &cost
			}

			return withApp(func(ctx context.Context, a *app) error {
				result, err := a.mediator.Send(ctx, command)
				if err != nil {
					return fmt.Errorf("failed to submit decision: %w", err)
				}
				response := result.(*commands.SubmitSalesDecisionResponse)

				fmt.Printf("Decision %d recorded for %s\n", response.DecisionID, response.Period)
				fmt.Printf("  Transport cost:   %s per unit\n", formatEuros(response.TransportCost))
				fmt.Printf("  Expected revenue: %s\n", formatEuros(response.ExpectedRevenue))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&marketName, "market", "", "Market name [required]")
	cmd.Flags().StringVar(&bikeType, "bike-type", "", "Bike type name [required]")
	cmd.Flags().StringVar(&segment, "segment", "", "Price segment: cheap, standard, premium [required]")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Units to offer [required]")
	cmd.Flags().StringVar(&price, "price", "", "Desired unit price [required]")
	cmd.Flags().StringVar(&transport, "transport", "", "Transport cost per unit (default: market home cost)")
	cmd.MarkFlagRequired("market")
	cmd.MarkFlagRequired("bike-type")
	cmd.MarkFlagRequired("segment")
	cmd.MarkFlagRequired("quantity")
	cmd.MarkFlagRequired("price")

	return cmd
}

func newSalesProcessCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Clear pending decisions now",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				result, err := a.mediator.Send(ctx, &commands.ProcessSalesDecisionsCommand{SessionID: id})
				if err != nil {
					return fmt.Errorf("failed to process decisions: %w", err)
				}
				response := result.(*commands.ProcessSalesDecisionsResponse)

				fmt.Printf("Processed %d decisions in %d segments\n", response.DecisionsProcessed, response.Segments)
				fmt.Printf("  Units sold: %d\n", response.UnitsSold)
				fmt.Printf("  Revenue:    %s\n", formatEuros(response.Revenue))
				fmt.Printf("  Balance:    %s\n", formatEuros(response.Balance))
				return nil
			})
		},
	}
}

func newSalesPendingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "Summarize pending decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				result, err := a.mediator.Send(ctx, &queries.GetPendingDecisionsSummaryQuery{SessionID: id})
				if err != nil {
					return fmt.Errorf("failed to summarize decisions: %w", err)
				}
				displayPending(result.(*queries.GetPendingDecisionsSummaryResponse))
				return nil
			})
		},
	}
}

func newSalesResultsCommand() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show recently processed decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				result, err := a.mediator.Send(ctx, &queries.GetRecentSalesResultsQuery{SessionID: id, LookbackMonths: months})
				if err != nil {
					return fmt.Errorf("failed to load results: %w", err)
				}
				displayResults(result.(*queries.GetRecentSalesResultsResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&months, "months", 3, "How many months to look back")
	return cmd
}

func displayPending(r *queries.GetPendingDecisionsSummaryResponse) {
	if r.TotalDecisions == 0 {
		fmt.Println("No pending decisions")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Market\tDecisions\tUnits\tExpected Revenue")
	for _, m := range r.Markets {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", m.Market, m.Decisions, m.Quantity, formatEuros(m.ExpectedRevenue))
	}
	fmt.Fprintf(w, "Total\t%d\t%d\t%s\n", r.TotalDecisions, r.TotalQuantity, formatEuros(r.ExpectedRevenue))
	w.Flush()
}

func displayResults(r *queries.GetRecentSalesResultsResponse) {
	if len(r.Results) == 0 {
		fmt.Printf("No processed decisions since %s\n", r.Since)
		return
	}

	fmt.Printf("Sales results since %s\n", r.Since)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Decision\tPeriod\tSegment\tSold\tPrice\tRevenue\tSuccess\tReason")
	for _, res := range r.Results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%s\t%s\t%.0f%%\t%s\n",
			res.DecisionID, res.Period, res.Segment, res.QuantitySold, res.Quantity,
			formatEuros(res.DesiredPrice), formatEuros(res.ActualRevenue), res.SuccessRate, res.UnsoldReason)
	}
	w.Flush()
}
