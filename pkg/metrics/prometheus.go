// Package metrics provides Prometheus metrics for the reel clustering engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Clustering metrics
	assetsClustered   prometheus.Counter
	clustersProduced  prometheus.Counter
	burstsDetected    prometheus.Counter
	clusteringLatency prometheus.Histogram

	// Suggestion metrics
	suggestionsGenerated prometheus.Counter
	suggestionConfidence prometheus.Histogram
	suggestionsAccepted  *prometheus.CounterVec
	suggestionsRejected  *prometheus.CounterVec
	feedbackWeight       *prometheus.GaugeVec

	// Cache metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "reel",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Register on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.assetsClustered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assets_clustered_total",
		Help:      "Total number of assets run through the clustering engine",
	})

	m.clustersProduced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "clusters_produced_total",
		Help:      "Total number of event clusters emitted",
	})

	m.burstsDetected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bursts_detected_total",
		Help:      "Total number of clusters flagged as photo bursts",
	})

	m.clusteringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "clustering_latency_milliseconds",
		Help:      "Histogram of full clustering pass latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.suggestionsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestions_generated_total",
		Help:      "Total number of event suggestions produced",
	})

	m.suggestionConfidence = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestion_confidence",
		Help:      "Histogram of confidence scores for generated suggestions",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})

	m.suggestionsAccepted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestions_accepted_total",
		Help:      "Total number of accepted suggestions by event type",
	}, []string{"event_type"})

	m.suggestionsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestions_rejected_total",
		Help:      "Total number of rejected suggestions by event type",
	}, []string{"event_type"})

	m.feedbackWeight = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_weight",
		Help:      "Current ranking weight per event type",
	}, []string{"event_type"})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestion_cache_hits_total",
		Help:      "Total number of suggestion cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestion_cache_misses_total",
		Help:      "Total number of suggestion cache misses",
	})
}

// RecordAssetsClustered adds to the clustered-assets counter.
func RecordAssetsClustered(n int) {
	globalManager.assetsClustered.Add(float64(n))
}

// RecordClustersProduced adds to the emitted-clusters counter.
func RecordClustersProduced(n int) {
	globalManager.clustersProduced.Add(float64(n))
}

// RecordBurstsDetected adds to the burst counter.
func RecordBurstsDetected(n int) {
	globalManager.burstsDetected.Add(float64(n))
}

// RecordClusteringLatency records a clustering pass latency in milliseconds.
func RecordClusteringLatency(latencyMs float64) {
	globalManager.clusteringLatency.Observe(latencyMs)
}

// RecordSuggestionsGenerated adds to the suggestion counter.
func RecordSuggestionsGenerated(n int) {
	globalManager.suggestionsGenerated.Add(float64(n))
}

// RecordSuggestionConfidence records one suggestion's confidence score.
func RecordSuggestionConfidence(confidence float64) {
	globalManager.suggestionConfidence.Observe(confidence)
}

// RecordSuggestionAccepted increments the accepted counter for an event type.
func RecordSuggestionAccepted(eventType string) {
	globalManager.suggestionsAccepted.WithLabelValues(eventType).Inc()
}

// RecordSuggestionRejected increments the rejected counter for an event type.
func RecordSuggestionRejected(eventType string) {
	globalManager.suggestionsRejected.WithLabelValues(eventType).Inc()
}

// UpdateFeedbackWeight sets the current ranking weight for an event type.
func UpdateFeedbackWeight(eventType string, weight float64) {
	globalManager.feedbackWeight.WithLabelValues(eventType).Set(weight)
}

// RecordCacheHit increments the suggestion cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the suggestion cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
