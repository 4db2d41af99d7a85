package config

import "time"

// RedisConfig holds the connection used for the per-session lock
type RedisConfig struct {
	// Enabled switches the lock from in-process to Redis
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`

	// LockTTL bounds how long a crashed holder keeps a session locked
	LockTTL time.Duration `mapstructure:"lock_ttl"`
}
