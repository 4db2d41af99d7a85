package competitor

import "github.com/shopspring/decimal"

// DefaultRoster returns the four competitors every new session starts with
func DefaultRoster(sessionID string) []*Competitor {
	entries := []struct {
		name       string
		strategy   Strategy
		resources  int64
		presence   float64
		aggression float64
		efficiency float64
	}{
		{"BilligRad GmbH", StrategyCheapOnly, 40000, 12, 0.8, 0.6},
		{"QualitätsBikes AG", StrategyPremiumFocus, 75000, 18, 0.4, 0.9},
		{"E-Power Cycles", StrategyEBikeSpecialist, 60000, 15, 0.6, 0.8},
		{"AllRound Bikes", StrategyBalanced, 55000, 20, 0.5, 0.7},
	}

	roster := make([]*Competitor, 0, len(entries))
	for _, s := range entries {
		roster = append(roster, &Competitor{
			SessionID:          sessionID,
			Name:               s.name,
			Strategy:           s.strategy,
			FinancialResources: decimal.NewFromInt(s.resources),
			MarketPresence:     s.presence,
			Aggressiveness:     s.aggression,
			Efficiency:         s.efficiency,
			TotalRevenue:       decimal.Zero,
		})
	}
	return roster
}
