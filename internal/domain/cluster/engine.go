package cluster

import (
	"context"
	"sort"
	"time"

	"github.com/lumeo/reel/internal/domain/geo"
	"github.com/lumeo/reel/internal/domain/model"
	"github.com/lumeo/reel/pkg/logger"
	"github.com/lumeo/reel/pkg/metrics"
)

// Engine partitions an asset list into event clusters. It is stateless per
// call: identical inputs always produce identical outputs, and concurrent
// calls on different inputs need no coordination.
type Engine struct {
	cfg    Config
	logger logger.Logger
}

// New constructs an Engine, rejecting invalid configuration eagerly.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:    DefaultConfig(),
		logger: nil, // resolved lazily so tests can run without logger.Init
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Config returns the engine's thresholds.
func (e *Engine) Config() Config {
	return e.cfg
}

// Cluster partitions assets into event clusters. Every input asset appears
// in exactly one output cluster; each cluster is chronologically sorted,
// carries a burst flag, and has exactly one key asset. Empty input yields
// an empty result.
func (e *Engine) Cluster(ctx context.Context, assets []model.MediaAsset) []model.EventCluster {
	if len(assets) == 0 {
		return nil
	}

	start := time.Now()

	// Defensive copy so callers keep their slice and flags untouched.
	sorted := make([]model.MediaAsset, len(assets))
	copy(sorted, assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	groups := e.partition(sorted)

	clusters := make([]model.EventCluster, 0, len(groups))
	bursts := 0
	for _, g := range groups {
		for _, c := range e.refineBursts(g) {
			markKeyAsset(&c)
			if c.IsBurst {
				bursts++
			}
			clusters = append(clusters, c)
		}
	}

	metrics.RecordAssetsClustered(len(assets))
	metrics.RecordClustersProduced(len(clusters))
	metrics.RecordBurstsDetected(bursts)
	metrics.RecordClusteringLatency(float64(time.Since(start).Milliseconds()))

	if e.logger != nil {
		e.logger.Debug(ctx, "clustering pass complete",
			logger.Int("assets", len(assets)),
			logger.Int("clusters", len(clusters)),
			logger.Int("bursts", bursts),
		)
	}

	return clusters
}

// partition performs the single forward pass over time-sorted assets,
// comparing each asset against the last asset added to the open group. The
// incremental gap lets chains of closely spaced photos span more than one
// threshold window.
func (e *Engine) partition(sorted []model.MediaAsset) [][]model.MediaAsset {
	var groups [][]model.MediaAsset

	current := []model.MediaAsset{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		prev := current[len(current)-1]
		curr := sorted[i]

		if e.sameEvent(prev, curr) {
			current = append(current, curr)
			continue
		}

		groups = append(groups, current)
		current = []model.MediaAsset{curr}
	}
	groups = append(groups, current)

	return groups
}

// sameEvent reports whether curr belongs to the event prev closed out.
// Missing location on either side satisfies spatial gating: assets are never
// rejected solely for lacking GPS data.
func (e *Engine) sameEvent(prev, curr model.MediaAsset) bool {
	if curr.CreatedAt.Sub(prev.CreatedAt) > e.cfg.TemporalThreshold {
		return false
	}
	if e.cfg.SpatialGatingDisabled() {
		return true
	}
	if !prev.HasLocation() || !curr.HasLocation() {
		return true
	}
	return geo.Distance(*prev.Location, *curr.Location) <= e.cfg.SpatialThresholdMeters
}
