// Package config declares the playground configuration, loaded from PG_
// prefixed environment variables.
package config

// Config is the root playground configuration.
type Config struct {
	Environment string `mapstructure:"env"`
	Motor       *MotorConfig
}
