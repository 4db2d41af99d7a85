package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/bikesim-go/internal/application/ledger/queries"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Financial ledger operations",
		Long: `View and analyze financial transactions.

The ledger records every player sale and every competitor sale and liquidation.

Categories:
  sales        - Revenue from sold bikes
  liquidation  - Competitor write-downs of old inventory

Examples:
  bikesim ledger list --limit 20
  bikesim ledger list --month 3 --year 2024 --player-only
  bikesim ledger cash-flow --month 3 --year 2024`,
	}

	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerCashFlowCommand())
	return cmd
}

func newLedgerListCommand() *cobra.Command {
	var (
		month      int
		year       int
		category   string
		txType     string
		playerOnly bool
		limit      int
		offset     int
		orderBy    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			period, err := parsePeriodFlags(month, year)
			if err != nil {
				return err
			}

			query := &queries.GetTransactionsQuery{
				SessionID:  id,
				Period:     period,
				PlayerOnly: playerOnly,
				Limit:      limit,
				Offset:     offset,
				OrderBy:    orderBy,
			}
			if category != "" {
				query.Category = &category
			}
			if txType != "" {
				query.TransactionType = &txType
			}

			return withApp(func(ctx context.Context, a *app) error {
				result, err := a.mediator.Send(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to query transactions: %w", err)
				}
				displayTransactionList(result.(*queries.GetTransactionsResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Filter by month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "Filter by year")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&txType, "type", "", "Filter by type (income, expense)")
	cmd.Flags().BoolVar(&playerOnly, "player-only", false, "Only the player's transactions")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	cmd.Flags().StringVar(&orderBy, "order-by", "timestamp DESC", "Sort order")

	return cmd
}

func newLedgerCashFlowCommand() *cobra.Command {
	var (
		month int
		year  int
	)

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Cash flow by category and owner",
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
				result, err := a.mediator.Send(ctx, &queries.GetCashFlowQuery{SessionID: id, Period: period})
				if err != nil {
					return fmt.Errorf("failed to generate cash flow: %w", err)
				}
				displayCashFlow(result.(*queries.GetCashFlowResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "Year")
	return cmd
}

func displayTransactionList(response *queries.GetTransactionsResponse) {
	if len(response.Transactions) == 0 {
		fmt.Println("No transactions found")
		return
	}

	fmt.Printf("\nTRANSACTIONS (Showing %d of %d total)\n", len(response.Transactions), response.Total)
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Period\tOwner\tType\tCategory\tAmount\tDescription")
	for _, tx := range response.Transactions {
		owner := "player"
		if tx.CompetitorID != nil {
			owner = fmt.Sprintf("competitor #%d", *tx.CompetitorID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Period, owner, tx.Type, tx.Category, tx.Amount, tx.Description)
	}
	w.Flush()
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
}

func displayCashFlow(response *queries.GetCashFlowResponse) {
	fmt.Printf("\nCASH FLOW STATEMENT (By Category)\n")
	fmt.Printf("Period: %s\n", response.Period)
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	if len(response.Categories) == 0 {
		fmt.Println("No transactions in this period")
		return
	}

	net := decimal.Zero
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Category\tOwner\tInflow\tOutflow\tNet\tCount")
	for _, c := range response.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			c.Category, c.Owner, formatEuros(c.TotalInflow), formatEuros(c.TotalOutflow), formatSigned(c.NetFlow), c.Transactions)
		if c.Owner == "player" {
			net = net.Add(c.NetFlow)
		}
	}
	w.Flush()
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
	fmt.Printf("PLAYER NET CASH FLOW: %s\n", formatSigned(net))
}
