package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if REEL_CONFIG is set
//  3. env (prefix REEL_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("REEL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: REEL_LOG_LEVEL, REEL_MIN_BURST_SIZE, ...
	// Map env keys like REEL_MIN_BURST_SIZE -> min_burst_size (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("REEL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "reel_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation; detailed threshold validation happens when the
	// clustering config is constructed from these values.
	if cfg.TemporalThresholdMinutes <= 0 {
		return nil, fmt.Errorf("%w: temporal_threshold_minutes must be positive", ErrInvalidConfig)
	}
	if cfg.BurstThresholdSeconds <= 0 {
		return nil, fmt.Errorf("%w: burst_threshold_seconds must be positive", ErrInvalidConfig)
	}
	if cfg.MinBurstSize > cfg.MaxBurstSize {
		return nil, fmt.Errorf("%w: min_burst_size exceeds max_burst_size", ErrInvalidConfig)
	}
	if cfg.MinConfidence < 0 || cfg.MinConfidence > 1 {
		return nil, fmt.Errorf("%w: min_confidence must be in [0,1]", ErrInvalidConfig)
	}
	return &cfg, nil
}
