package metrics

import "fmt"

// Collectors bundles the collectors created by Setup
type Collectors struct {
	Commands   *CommandMetricsCollector
	Simulation *SimulationMetricsCollector
	Financial  *FinancialMetricsCollector
}

// Setup initializes the registry, registers every collector and installs the global recorders
func Setup() (*Collectors, error) {
	InitRegistry()

	c := &Collectors{
		Commands:   NewCommandMetricsCollector(),
		Simulation: NewSimulationMetricsCollector(),
		Financial:  NewFinancialMetricsCollector(),
	}
	if err := c.Commands.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	if err := c.Simulation.Register(); err != nil {
		return nil, fmt.Errorf("failed to register simulation metrics: %w", err)
	}
	if err := c.Financial.Register(); err != nil {
		return nil, fmt.Errorf("failed to register financial metrics: %w", err)
	}

	SetGlobalSimulationCollector(c.Simulation)
	SetGlobalFinancialCollector(c.Financial)
	return c, nil
}
