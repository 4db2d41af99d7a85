package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bikesim-go/internal/adapters/scenario"
	"github.com/andrescamacho/bikesim-go/internal/application/session/commands"
)

// NewScenarioCommand creates the scenario command with subcommands
func NewScenarioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Scenario workbooks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "template <file.xlsx>",
		Short: "Write the built-in scenario as an editable workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.WriteWorkbook(commands.DefaultScenario(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Scenario template written to %s\n", args[0])
			return nil
		},
	})
	return cmd
}
