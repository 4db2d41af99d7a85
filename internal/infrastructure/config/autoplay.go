package config

// AutoplayConfig paces the consecutive-month runner
type AutoplayConfig struct {
	MonthsPerSecond float64 `mapstructure:"months_per_second" validate:"gt=0"`
	Burst           int     `mapstructure:"burst" validate:"min=1"`
}
