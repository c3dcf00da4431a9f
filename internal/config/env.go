package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds PROPDRILL_* overrides. Nil fields were not set.
type EnvConfig struct {
	Rounds   *int    `env:"PROPDRILL_ROUNDS"`
	Seed     *int64  `env:"PROPDRILL_SEED"`
	Plain    *bool   `env:"PROPDRILL_PLAIN"`
	DebugLog *string `env:"PROPDRILL_DEBUG_LOG"`
}

// LoadEnv reads overrides from the process environment.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// LoadEnvFrom reads overrides from vars instead of the process environment.
func LoadEnvFrom(vars map[string]string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Merge layers env over the file config; set env values win.
func (e EnvConfig) Merge(file PracticeConfig) PracticeConfig {
	out := file
	if e.Rounds != nil {
		out.Rounds = e.Rounds
	}
	if e.Seed != nil {
		out.Seed = e.Seed
	}
	if e.Plain != nil {
		out.Plain = e.Plain
	}
	if e.DebugLog != nil {
		out.DebugLog = e.DebugLog
	}
	return out
}
