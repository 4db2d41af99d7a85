package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bikesim-go/internal/application/session/commands"
	"github.com/andrescamacho/bikesim-go/internal/application/session/queries"
	"github.com/andrescamacho/bikesim-go/internal/infrastructure/config"
)

// NewSessionCommand creates the session command with subcommands
func NewSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Create and select game sessions",
	}

	cmd.AddCommand(newSessionCreateCommand())
	cmd.AddCommand(newSessionListCommand())
	cmd.AddCommand(newSessionUseCommand())
	return cmd
}

func newSessionCreateCommand() *cobra.Command {
	var (
		name         string
		scenarioPath string
		balance      string
		startMonth   int
		startYear    int
		makeDefault  bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a session",
		Long: `Create a session from the built-in scenario or an .xlsx scenario workbook.

Without --scenario the session gets five German markets, seven bike types and the
default competitor roster. See 'bikesim scenario template' for the workbook layout.

Examples:
  bikesim session create --name "Spring league"
  bikesim session create --name Custom --scenario league.xlsx --balance 120000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &commands.CreateSessionCommand{
				Name:         name,
				ScenarioPath: scenarioPath,
				StartMonth:   startMonth,
				StartYear:    startYear,
			}
			if balance != "" {
				amount, err := parseMoney("balance", balance)
				if err != nil {
					return err
				}
				command.Balance = amount
			}

			return withApp(func(ctx context.Context, a *app) error {
				result, err := a.mediator.Send(ctx, command)
				if err != nil {
					return fmt.Errorf("failed to create session: %w", err)
				}
				response := result.(*commands.CreateSessionResponse)

				fmt.Printf("Session created: %s\n", response.SessionID)
				fmt.Printf("  Name:          %s\n", response.Name)
				fmt.Printf("  Period:        %s\n", response.Period)
				fmt.Printf("  Balance:       %s\n", formatEuros(response.Balance))
				fmt.Printf("  Markets:       %d\n", response.Markets)
				fmt.Printf("  Bike types:    %d\n", response.BikeTypes)
				fmt.Printf("  Competitors:   %d\n", response.Competitors)
				fmt.Printf("  Opening stock: %d bikes\n", response.OpeningStock)

				if makeDefault {
					return setDefaultSession(response.SessionID)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Session name [required]")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario workbook (.xlsx)")
	cmd.Flags().StringVar(&balance, "balance", "", "Opening balance (default 80000.00)")
	cmd.Flags().IntVar(&startMonth, "start-month", 0, "First simulated month (default 1)")
	cmd.Flags().IntVar(&startYear, "start-year", 0, "First simulated year (default 2024)")
	cmd.Flags().BoolVar(&makeDefault, "use", true, "Make the new session the default")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newSessionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				result, err := a.mediator.Send(ctx, &queries.ListSessionsQuery{})
				if err != nil {
					return fmt.Errorf("failed to list sessions: %w", err)
				}
				response := result.(*queries.ListSessionsResponse)
				displaySessions(response.Sessions)
				return nil
			})
		},
	}
}

func newSessionUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <session-id>",
		Short: "Set the default session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setDefaultSession(args[0])
		},
	}
}

func setDefaultSession(id string) error {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return err
	}
	if err := handler.SetDefaultSession(id); err != nil {
		return fmt.Errorf("failed to store default session: %w", err)
	}
	fmt.Printf("Default session set to %s\n", id)
	return nil
}

func displaySessions(sessions []*queries.SessionDTO) {
	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tPeriod\tBalance\tCreated")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Name, s.Period, formatEuros(s.Balance), s.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}
