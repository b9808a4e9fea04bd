package cluster

import (
	"github.com/lumeo/reel/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithConfig sets the clustering thresholds. The config is validated when
// the engine is constructed.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
