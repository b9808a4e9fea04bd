// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the Prometheus exposition address, e.g. ":9090".
	// Empty disables the endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	// Context selects a clustering threshold preset:
	// default, travel, pet, business, party.
	Context string `koanf:"context"`

	// TemporalThresholdMinutes is the maximum gap between consecutive
	// assets in the same cluster.
	TemporalThresholdMinutes int `koanf:"temporal_threshold_minutes"`

	// SpatialThresholdMeters is the maximum distance between consecutive
	// located assets in the same cluster. 0 disables spatial gating.
	SpatialThresholdMeters float64 `koanf:"spatial_threshold_meters"`

	// BurstThresholdSeconds is the maximum inter-photo gap inside a burst.
	BurstThresholdSeconds int `koanf:"burst_threshold_seconds"`

	// MinBurstSize and MaxBurstSize bound valid burst sizes, inclusive.
	MinBurstSize int `koanf:"min_burst_size"`
	MaxBurstSize int `koanf:"max_burst_size"`

	// MinConfidence filters suggestions below this confidence.
	MinConfidence float64 `koanf:"min_confidence"`

	// CacheTTLMinutes bounds how long suggestion computations are memoized.
	CacheTTLMinutes int `koanf:"cache_ttl_minutes"`

	// Scoring weights; must sum to 1.0.
	TimeWeight     float64 `koanf:"time_weight"`
	LocationWeight float64 `koanf:"location_weight"`
	PeopleWeight   float64 `koanf:"people_weight"`
	DensityWeight  float64 `koanf:"density_weight"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                 "info",
		MetricsAddr:              "",
		Context:                  "default",
		TemporalThresholdMinutes: 180,
		SpatialThresholdMeters:   2000,
		BurstThresholdSeconds:    30,
		MinBurstSize:             3,
		MaxBurstSize:             20,
		MinConfidence:            0.5,
		CacheTTLMinutes:          60,
		TimeWeight:               0.5,
		LocationWeight:           0.3,
		PeopleWeight:             0.15,
		DensityWeight:            0.05,
	}
}
