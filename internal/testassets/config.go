// Package testassets generates synthetic media timelines and verifies
// clustering invariants over them. It backs the demo harness and the
// large-input tests.
package testassets

import "time"

// Config holds configuration for timeline generation.
type Config struct {
	NumDays   int       // number of calendar days to simulate
	Start     time.Time // timestamp of the first day
	Seed      int64     // rand seed; identical seeds reproduce the timeline
	WithFaces bool      // attach synthetic face IDs to some assets
}

// DefaultConfig returns a month-long timeline, seeded for reproducibility.
func DefaultConfig() Config {
	return Config{
		NumDays: 30,
		Start:   time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC),
		Seed:    42,
	}
}

// Stats summarizes a generated timeline.
type Stats struct {
	Assets     int
	BurstDays  int
	OutingDays int
	PartyDays  int
	QuietDays  int
}
