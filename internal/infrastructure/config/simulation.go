package config

// SimulationConfig tunes the month processing
type SimulationConfig struct {
	// Seed for the random source; 0 derives one from the clock
	Seed int64 `mapstructure:"seed"`

	// SalesCycleMonths is the sales cadence; markets clear every Nth month
	SalesCycleMonths int `mapstructure:"sales_cycle_months" validate:"min=1,max=12"`

	// AllocationStrategy used by the month run: competitive or price_order
	AllocationStrategy string `mapstructure:"allocation_strategy" validate:"required,oneof=competitive price_order"`

	Liquidation LiquidationConfig `mapstructure:"liquidation"`
}

// LiquidationConfig holds the excess-inventory liquidation thresholds
type LiquidationConfig struct {
	MinAgeMonths          int     `mapstructure:"min_age_months" validate:"min=1"`
	AggressiveThreshold   float64 `mapstructure:"aggressive_threshold" validate:"gte=0,lte=1"`
	ConservativeThreshold float64 `mapstructure:"conservative_threshold" validate:"gte=0,lte=1,ltefield=AggressiveThreshold"`
	WriteDownRate         float64 `mapstructure:"write_down_rate" validate:"gte=0,lte=1"`
}
