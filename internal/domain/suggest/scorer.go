// Package suggest scores asset groups for event-worthiness and maintains
// the user-feedback state that biases suggestion ranking.
package suggest

import (
	"fmt"
	"math"
	"time"

	"github.com/lumeo/reel/internal/domain/model"
)

// Documented scoring weights. They must sum to 1.0.
const (
	defaultTimeWeight     = 0.5
	defaultLocationWeight = 0.3
	defaultPeopleWeight   = 0.15
	defaultDensityWeight  = 0.05
)

// Normalization constants for the sub-scores.
const (
	timeSpanNormHours    = 24.0
	peopleNorm           = 10.0
	densityNorm          = 30.0
	missingLocationScore = 0.5

	weightSumEpsilon = 1e-9
)

// Classification thresholds.
const (
	holidayMonth          = time.December
	holidayFromDay        = 20
	celebrationDensityMin = 20.0 // photos per hour
)

// Group is the scoring view of a candidate event: the aggregate facts the
// scorer needs, independent of how the group was formed.
type Group struct {
	Start       time.Time
	End         time.Time
	PhotoCount  int
	HasLocation bool
	PeopleCount int
}

// SpanHours returns the group duration in hours.
func (g Group) SpanHours() float64 {
	return g.End.Sub(g.Start).Hours()
}

// Scorer combines weighted sub-scores into a single [0,1] confidence value
// and classifies groups into event types.
type Scorer struct {
	timeWeight     float64
	locationWeight float64
	peopleWeight   float64
	densityWeight  float64
}

// ScorerOption applies a configuration option to the Scorer.
type ScorerOption func(*Scorer)

// WithWeights overrides the sub-score weights. The constructor rejects
// weights that do not sum to 1.0.
func WithWeights(timeW, locationW, peopleW, densityW float64) ScorerOption {
	return func(s *Scorer) {
		s.timeWeight = timeW
		s.locationWeight = locationW
		s.peopleWeight = peopleW
		s.densityWeight = densityW
	}
}

// NewScorer creates a Scorer with the documented default weights
// (time 0.5, location 0.3, people 0.15, density 0.05).
func NewScorer(opts ...ScorerOption) (*Scorer, error) {
	s := &Scorer{
		timeWeight:     defaultTimeWeight,
		locationWeight: defaultLocationWeight,
		peopleWeight:   defaultPeopleWeight,
		densityWeight:  defaultDensityWeight,
	}

	for _, opt := range opts {
		opt(s)
	}

	sum := s.timeWeight + s.locationWeight + s.peopleWeight + s.densityWeight
	if math.Abs(sum-1.0) > weightSumEpsilon {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidWeights, sum)
	}
	return s, nil
}

// Score computes the confidence for a group. Each sub-score is clamped
// independently and the weighted sum is clamped to [0,1].
func (s *Scorer) Score(g Group) float64 {
	timeScore := clamp01(1.0 - g.SpanHours()/timeSpanNormHours)

	locationScore := missingLocationScore
	if g.HasLocation {
		locationScore = 1.0
	}

	peopleScore := math.Min(float64(g.PeopleCount)/peopleNorm, 1.0)
	densityScore := math.Min(Density(g.PhotoCount, g.End.Sub(g.Start))/densityNorm, 1.0)

	score := s.timeWeight*timeScore +
		s.locationWeight*locationScore +
		s.peopleWeight*peopleScore +
		s.densityWeight*densityScore

	return clamp01(score)
}

// Classify assigns an event type by priority: holiday window, weekend,
// celebration-grade photo density, then general.
func (s *Scorer) Classify(g Group) model.EventType {
	day := g.Start
	if day.Month() == holidayMonth && day.Day() >= holidayFromDay {
		return model.EventTypeHoliday
	}
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return model.EventTypeWeekend
	}
	if Density(g.PhotoCount, g.End.Sub(g.Start)) > celebrationDensityMin {
		return model.EventTypeCelebration
	}
	return model.EventTypeGeneral
}

// Density returns photos per hour. Fewer than two photos yields zero; a
// zero span returns the raw photo count to avoid dividing by zero.
func Density(photoCount int, span time.Duration) float64 {
	if photoCount < 2 {
		return 0
	}
	hours := span.Hours()
	if hours == 0 {
		return float64(photoCount)
	}
	return float64(photoCount) / hours
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
