// Package service provides the core business service exposing the clustering
// and smart-suggestion call surfaces to the rest of the application.
package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumeo/reel/internal/domain/cluster"
	"github.com/lumeo/reel/internal/domain/model"
	"github.com/lumeo/reel/internal/domain/suggest"
	"github.com/lumeo/reel/pkg/logger"
	"github.com/lumeo/reel/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMinConfidence = 0.5
	defaultCacheTTL      = time.Hour

	// Suggestion candidates need at least this many assets.
	minSuggestionAssets = 2

	// Grouping thresholds for suggestion candidates: a wide temporal chain
	// with spatial gating off, so a day out forms one candidate event.
	groupingTemporalThreshold = 6 * time.Hour
)

// Service implements the clustering and suggestion API.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine   *cluster.Engine
	grouping *cluster.Engine
	scorer   *suggest.Scorer
	feedback *suggest.FeedbackStore
	cache    *suggest.Cache

	// Configuration
	clusterCfg    cluster.Config
	groupingCfg   cluster.Config
	weights       *[4]float64
	minConfidence float64
	cacheTTL      time.Duration

	// issued maps suggestion IDs to their event type so accept/reject
	// feedback can be attributed.
	issued map[string]model.EventType

	// Logging
	logger logger.Logger
}

// New constructs a Service, rejecting invalid configuration eagerly.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		clusterCfg:    cluster.DefaultConfig(),
		groupingCfg:   defaultGroupingConfig(),
		minConfidence: defaultMinConfidence,
		cacheTTL:      defaultCacheTTL,
		issued:        make(map[string]model.EventType),
		logger:        nil, // resolved lazily so tests can run without logger.Init
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	var err error
	s.engine, err = cluster.New(cluster.WithConfig(s.clusterCfg), cluster.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("cluster config: %w", err)
	}
	s.grouping, err = cluster.New(cluster.WithConfig(s.groupingCfg), cluster.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("grouping config: %w", err)
	}

	scorerOpts := []suggest.ScorerOption{}
	if s.weights != nil {
		scorerOpts = append(scorerOpts, suggest.WithWeights(s.weights[0], s.weights[1], s.weights[2], s.weights[3]))
	}
	s.scorer, err = suggest.NewScorer(scorerOpts...)
	if err != nil {
		return nil, fmt.Errorf("scorer config: %w", err)
	}

	s.feedback = suggest.NewFeedbackStore()
	s.cache = suggest.NewCache(suggest.WithTTL(s.cacheTTL))

	return s, nil
}

func defaultGroupingConfig() cluster.Config {
	cfg := cluster.DefaultConfig()
	cfg.TemporalThreshold = groupingTemporalThreshold
	cfg.SpatialThresholdMeters = math.Inf(1)
	return cfg
}

// ClusterAssets partitions assets into event clusters using the service's
// configured thresholds.
func (s *Service) ClusterAssets(ctx context.Context, assets []model.MediaAsset) []model.EventCluster {
	return s.engine.Cluster(ctx, assets)
}

// ClusterAssetsWith partitions assets using caller-supplied thresholds. The
// config is validated before any clustering work happens.
func (s *Service) ClusterAssetsWith(ctx context.Context, assets []model.MediaAsset, cfg cluster.Config) ([]model.EventCluster, error) {
	eng, err := cluster.New(cluster.WithConfig(cfg), cluster.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	return eng.Cluster(ctx, assets), nil
}

// AnalyzeAndSuggestEvents scores asset groups for event-worthiness and
// returns typed, ranked suggestions. people maps asset IDs to additional
// person identifiers from upstream face grouping; it may be nil.
// Results are memoized per time window for the configured cache TTL.
func (s *Service) AnalyzeAndSuggestEvents(ctx context.Context, assets []model.MediaAsset, people map[string][]string) []model.EventSuggestion {
	if len(assets) == 0 {
		return nil
	}

	start, end := timeBounds(assets)
	if cached, ok := s.cache.Get(start, end, ""); ok {
		return cached
	}

	candidates := s.grouping.Cluster(ctx, assets)

	var suggestions []model.EventSuggestion
	for _, c := range candidates {
		if c.Size() < minSuggestionAssets {
			continue
		}

		g := groupFromCluster(c, people)
		confidence := s.scorer.Score(g)
		eventType := s.scorer.Classify(g)

		if confidence < s.minConfidence {
			continue
		}
		if !s.feedback.ShouldSuggest(ctx, eventType) {
			continue
		}

		suggestions = append(suggestions, s.buildSuggestion(c, g, eventType, confidence, people))
		metrics.RecordSuggestionConfidence(confidence)
	}

	suggestions = dedupeSuggestions(suggestions)
	s.rankSuggestions(suggestions)

	s.mu.Lock()
	for _, sg := range suggestions {
		s.issued[sg.ID] = sg.Type
	}
	s.mu.Unlock()

	metrics.RecordSuggestionsGenerated(len(suggestions))
	if s.logger != nil {
		s.logger.Debug(ctx, "suggestion analysis complete",
			logger.Int("candidates", len(candidates)),
			logger.Int("suggestions", len(suggestions)),
		)
	}

	s.cache.Put(start, end, "", suggestions)
	return suggestions
}

// AcceptSuggestion records positive feedback for a previously issued
// suggestion, raising the ranking weight of its event type.
func (s *Service) AcceptSuggestion(ctx context.Context, id string) error {
	t, ok := s.lookupIssued(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSuggestion, id)
	}
	s.feedback.Accept(ctx, t)
	metrics.UpdateFeedbackWeight(string(t), s.feedback.Weight(t))
	return nil
}

// RejectSuggestion records negative feedback for a previously issued
// suggestion, lowering the ranking weight of its event type.
func (s *Service) RejectSuggestion(ctx context.Context, id string) error {
	t, ok := s.lookupIssued(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSuggestion, id)
	}
	s.feedback.Reject(ctx, t)
	metrics.UpdateFeedbackWeight(string(t), s.feedback.Weight(t))
	return nil
}

// Feedback exposes the feedback store, primarily for tests and the demo
// harness.
func (s *Service) Feedback() *suggest.FeedbackStore {
	return s.feedback
}

func (s *Service) lookupIssued(id string) (model.EventType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.issued[id]
	return t, ok
}

func (s *Service) buildSuggestion(c model.EventCluster, g suggest.Group, t model.EventType, confidence float64, people map[string][]string) model.EventSuggestion {
	photoIDs := make([]string, len(c.Assets))
	for i, a := range c.Assets {
		photoIDs[i] = a.ID
	}

	return model.EventSuggestion{
		ID:         uuid.New().String(),
		Title:      titleFor(t, g.Start),
		Type:       t,
		StartDate:  g.Start,
		EndDate:    g.End,
		PhotoIDs:   photoIDs,
		PeopleIDs:  peopleIn(c, people),
		Confidence: confidence,
		Metadata: map[string]string{
			"asset_count": strconv.Itoa(c.Size()),
			"density":     strconv.FormatFloat(suggest.Density(g.PhotoCount, g.End.Sub(g.Start)), 'f', 2, 64),
		},
	}
}

// rankSuggestions orders by feedback-adjusted confidence descending, with
// deterministic tie-breaks on start date then ID.
func (s *Service) rankSuggestions(suggestions []model.EventSuggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		wi := suggestions[i].Confidence * s.feedback.Weight(suggestions[i].Type)
		wj := suggestions[j].Confidence * s.feedback.Weight(suggestions[j].Type)
		if wi != wj {
			return wi > wj
		}
		if !suggestions[i].StartDate.Equal(suggestions[j].StartDate) {
			return suggestions[i].StartDate.Before(suggestions[j].StartDate)
		}
		return suggestions[i].ID < suggestions[j].ID
	})
}

// dedupeSuggestions keeps one representative per (type, start day),
// preferring the highest confidence and breaking ties on earlier start.
func dedupeSuggestions(suggestions []model.EventSuggestion) []model.EventSuggestion {
	type key struct {
		t   model.EventType
		day string
	}

	best := make(map[key]int)
	for i, sg := range suggestions {
		k := key{t: sg.Type, day: sg.StartDate.Format("2006-01-02")}
		j, ok := best[k]
		if !ok {
			best[k] = i
			continue
		}
		if sg.Confidence > suggestions[j].Confidence ||
			(sg.Confidence == suggestions[j].Confidence && sg.StartDate.Before(suggestions[j].StartDate)) {
			best[k] = i
		}
	}

	if len(best) == len(suggestions) {
		return suggestions
	}

	keep := make(map[int]bool, len(best))
	for _, i := range best {
		keep[i] = true
	}
	out := make([]model.EventSuggestion, 0, len(best))
	for i, sg := range suggestions {
		if keep[i] {
			out = append(out, sg)
		}
	}
	return out
}

// groupFromCluster projects a cluster onto the scorer's view. People are
// the union of detected face IDs and upstream person data for the
// cluster's assets.
func groupFromCluster(c model.EventCluster, people map[string][]string) suggest.Group {
	hasLocation := false
	for _, a := range c.Assets {
		if a.HasLocation() {
			hasLocation = true
			break
		}
	}

	return suggest.Group{
		Start:       c.Start(),
		End:         c.End(),
		PhotoCount:  c.Size(),
		HasLocation: hasLocation,
		PeopleCount: len(peopleIn(c, people)),
	}
}

// peopleIn returns the sorted distinct person IDs seen across the cluster.
func peopleIn(c model.EventCluster, people map[string][]string) []string {
	seen := make(map[string]bool)
	for _, a := range c.Assets {
		for _, id := range a.FaceIDs {
			seen[id] = true
		}
		for _, id := range people[a.ID] {
			seen[id] = true
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func timeBounds(assets []model.MediaAsset) (time.Time, time.Time) {
	start, end := assets[0].CreatedAt, assets[0].CreatedAt
	for _, a := range assets[1:] {
		if a.CreatedAt.Before(start) {
			start = a.CreatedAt
		}
		if a.CreatedAt.After(end) {
			end = a.CreatedAt
		}
	}
	return start, end
}

func titleFor(t model.EventType, start time.Time) string {
	date := start.Format("Jan 2, 2006")
	switch t {
	case model.EventTypeHoliday:
		return "Holiday Memories - " + date
	case model.EventTypeWeekend:
		return "Weekend - " + date
	case model.EventTypeCelebration:
		return "Celebration - " + date
	default:
		return "Moments - " + date
	}
}
