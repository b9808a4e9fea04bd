// Package cluster partitions a media timeline into event clusters using
// temporal and spatial gap thresholds, with burst detection and key-asset
// selection.
package cluster

import (
	"fmt"
	"math"
	"time"
)

// Default clustering configuration constants.
const (
	defaultTemporalThreshold = 3 * time.Hour
	defaultSpatialThreshold  = 2000.0 // meters
	defaultBurstThreshold    = 30 * time.Second
	defaultMinBurstSize      = 3
	defaultMaxBurstSize      = 20
)

// Config holds the thresholds driving a clustering pass. It is a value
// object: construct via NewConfig, DefaultConfig, or PresetConfig and treat
// as immutable.
type Config struct {
	// TemporalThreshold is the maximum gap between consecutive assets to
	// remain in the same cluster.
	TemporalThreshold time.Duration

	// SpatialThresholdMeters is the maximum distance between consecutive
	// located assets to remain in the same cluster. math.Inf(1) disables
	// spatial gating.
	SpatialThresholdMeters float64

	// BurstThreshold is the maximum inter-photo gap inside a burst.
	BurstThreshold time.Duration

	// MinBurstSize and MaxBurstSize bound how many assets form a valid
	// burst, inclusive.
	MinBurstSize int
	MaxBurstSize int
}

// NewConfig builds a validated Config. Invalid thresholds are rejected here,
// never silently clamped.
func NewConfig(temporal time.Duration, spatialMeters float64, burst time.Duration, minBurst, maxBurst int) (Config, error) {
	c := Config{
		TemporalThreshold:      temporal,
		SpatialThresholdMeters: spatialMeters,
		BurstThreshold:         burst,
		MinBurstSize:           minBurst,
		MaxBurstSize:           maxBurst,
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultConfig returns the general-purpose thresholds.
func DefaultConfig() Config {
	return Config{
		TemporalThreshold:      defaultTemporalThreshold,
		SpatialThresholdMeters: defaultSpatialThreshold,
		BurstThreshold:         defaultBurstThreshold,
		MinBurstSize:           defaultMinBurstSize,
		MaxBurstSize:           defaultMaxBurstSize,
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.TemporalThreshold <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTemporalThreshold, c.TemporalThreshold)
	}
	if c.SpatialThresholdMeters <= 0 || math.IsNaN(c.SpatialThresholdMeters) {
		return fmt.Errorf("%w: %v", ErrInvalidSpatialThreshold, c.SpatialThresholdMeters)
	}
	if c.BurstThreshold <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidBurstThreshold, c.BurstThreshold)
	}
	// A burst of one is impossible, and min must not exceed max.
	if c.MinBurstSize < 2 || c.MaxBurstSize < c.MinBurstSize {
		return fmt.Errorf("%w: min=%d max=%d", ErrInvalidBurstSize, c.MinBurstSize, c.MaxBurstSize)
	}
	return nil
}

// SpatialGatingDisabled reports whether the spatial threshold is infinite.
func (c Config) SpatialGatingDisabled() bool {
	return math.IsInf(c.SpatialThresholdMeters, 1)
}

// ContextKind selects a threshold preset tuned for a timeline context.
// Contexts replace open attribute maps with a closed, typed set.
type ContextKind string

// Known clustering contexts.
const (
	ContextDefault  ContextKind = "default"
	ContextTravel   ContextKind = "travel"
	ContextPet      ContextKind = "pet"
	ContextBusiness ContextKind = "business"
	ContextParty    ContextKind = "party"
)

// PresetConfig returns the threshold preset for a context kind.
func PresetConfig(kind ContextKind) (Config, error) {
	switch kind {
	case ContextDefault:
		return DefaultConfig(), nil
	case ContextTravel:
		// Long days on the move: wide time window, no spatial gating.
		return Config{
			TemporalThreshold:      12 * time.Hour,
			SpatialThresholdMeters: math.Inf(1),
			BurstThreshold:         time.Minute,
			MinBurstSize:           3,
			MaxBurstSize:           30,
		}, nil
	case ContextPet:
		// Rapid shots of a moving subject: tight bursts, loose space.
		return Config{
			TemporalThreshold:      6 * time.Hour,
			SpatialThresholdMeters: 5000,
			BurstThreshold:         10 * time.Second,
			MinBurstSize:           3,
			MaxBurstSize:           15,
		}, nil
	case ContextBusiness:
		return Config{
			TemporalThreshold:      time.Hour,
			SpatialThresholdMeters: 500,
			BurstThreshold:         30 * time.Second,
			MinBurstSize:           3,
			MaxBurstSize:           10,
		}, nil
	case ContextParty:
		// Single venue over an evening, heavy shooting.
		return Config{
			TemporalThreshold:      8 * time.Hour,
			SpatialThresholdMeters: 1000,
			BurstThreshold:         15 * time.Second,
			MinBurstSize:           5,
			MaxBurstSize:           40,
		}, nil
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownContext, kind)
	}
}
