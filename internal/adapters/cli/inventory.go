package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bikesim-go/internal/application/inventory/commands"
)

// NewInventoryCommand creates the inventory command with subcommands
func NewInventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage player inventory",
	}

	cmd.AddCommand(newInventoryAddCommand())
	return cmd
}

func newInventoryAddCommand() *cobra.Command {
	var (
		bikeType string
		segment  string
		quantity int
		unitCost string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add finished bikes to the player's stock",
		Long: `Add finished bikes to the player's warehouse in the current month.

Example:
  bikesim inventory add --bike-type Damenrad --segment standard --quantity 20 --unit-cost 210`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			cost, err := parseMoney("unit-cost", unitCost)
			if err != nil {
				return err
			}

			return withApp(func(ctx context.Context, a *app) error {
				result, err := a.mediator.Send(ctx, &commands.AddStockCommand{
					SessionID:    id,
					BikeTypeName: bikeType,
					Segment:      segment,
					Quantity:     quantity,
					UnitCost:     cost,
				})
				if err != nil {
					return fmt.Errorf("failed to add stock: %w", err)
				}
				response := result.(*commands.AddStockResponse)
				fmt.Printf("Added %d %s bikes (%s) in %s\n", len(response.BikeIDs), bikeType, segment, response.Period)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&bikeType, "bike-type", "", "Bike type name [required]")
	cmd.Flags().StringVar(&segment, "segment", "", "Price segment [required]")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Number of bikes [required]")
	cmd.Flags().StringVar(&unitCost, "unit-cost", "", "Production cost per bike [required]")
	cmd.MarkFlagRequired("bike-type")
	cmd.MarkFlagRequired("segment")
	cmd.MarkFlagRequired("quantity")
	cmd.MarkFlagRequired("unit-cost")

	return cmd
}
