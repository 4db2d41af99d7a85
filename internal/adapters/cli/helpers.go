package cli

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
	"github.com/andrescamacho/bikesim-go/internal/infrastructure/config"
)

// resolveSessionID returns the --session flag or the stored default session
func resolveSessionID() (string, error) {
	if sessionID != "" {
		return sessionID, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no session specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no session specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultSessionID != "" {
		return userCfg.DefaultSessionID, nil
	}

	return "", fmt.Errorf("no session specified: use --session, or set a default with 'bikesim session use <id>'")
}

// parsePeriodFlags turns optional --month/--year flags into a period; both zero means none
func parsePeriodFlags(month, year int) (*shared.Period, error) {
	if month == 0 && year == 0 {
		return nil, nil
	}
	p, err := shared.NewPeriod(month, year)
	if err != nil {
		return nil, fmt.Errorf("invalid period: %w", err)
	}
	return &p, nil
}

// parseMoney parses a flag holding an amount in euros
func parseMoney(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return d, nil
}

// formatEuros renders an amount with two decimals
func formatEuros(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

// formatSigned renders an amount with an explicit sign
func formatSigned(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + formatEuros(d)
	}
	return formatEuros(d)
}
