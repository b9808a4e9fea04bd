package service

import (
	"time"

	"github.com/lumeo/reel/internal/domain/cluster"
	"github.com/lumeo/reel/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClusterConfig sets the thresholds used by ClusterAssets.
func WithClusterConfig(cfg cluster.Config) Option {
	return func(s *Service) {
		s.clusterCfg = cfg
	}
}

// WithGroupingConfig sets the thresholds used to form suggestion candidates.
func WithGroupingConfig(cfg cluster.Config) Option {
	return func(s *Service) {
		s.groupingCfg = cfg
	}
}

// WithScoreWeights overrides the confidence sub-score weights.
func WithScoreWeights(timeW, locationW, peopleW, densityW float64) Option {
	return func(s *Service) {
		s.weights = &[4]float64{timeW, locationW, peopleW, densityW}
	}
}

// WithMinConfidence sets the suggestion confidence floor.
func WithMinConfidence(min float64) Option {
	return func(s *Service) {
		if min >= 0 && min <= 1 {
			s.minConfidence = min
		}
	}
}

// WithCacheTTL sets the suggestion cache entry lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}
