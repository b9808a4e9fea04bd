package suggest

import (
	"context"
	"math"
	"sync"

	"github.com/lumeo/reel/internal/domain/model"
	"github.com/lumeo/reel/pkg/metrics"
)

// Feedback weight tuning constants. Growth and decay are multiplicative and
// bounded so the weight stays in (0, maxWeight].
const (
	initialWeight = 1.0
	acceptFactor  = 1.1
	rejectFactor  = 0.9
	maxWeight     = 3.0
	minWeight     = 0.1

	// Suppression cutoffs for ShouldSuggest.
	suppressWeightBelow = 0.5
	suppressMinRejects  = 3
)

// Preference captures the accept/reject history for one event type.
type Preference struct {
	Weight  float64
	Accepts int
	Rejects int
}

// FeedbackStore maintains per-event-type preferences. It is safe for
// concurrent use: simultaneous accept and reject on the same type never
// corrupt the counters.
type FeedbackStore struct {
	mu    sync.RWMutex
	prefs map[model.EventType]*Preference
}

// NewFeedbackStore creates an empty feedback store. Preferences are created
// lazily on first feedback for a type and live for the store's lifetime.
func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{
		prefs: make(map[model.EventType]*Preference),
	}
}

// Accept records a user accepting a suggestion of the given type,
// increasing its weight with bounded growth.
func (f *FeedbackStore) Accept(_ context.Context, t model.EventType) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.pref(t)
	p.Accepts++
	p.Weight = math.Min(p.Weight*acceptFactor, maxWeight)
	metrics.RecordSuggestionAccepted(string(t))
}

// Reject records a user rejecting a suggestion of the given type,
// decreasing its weight with a positive floor.
func (f *FeedbackStore) Reject(_ context.Context, t model.EventType) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.pref(t)
	p.Rejects++
	p.Weight = math.Max(p.Weight*rejectFactor, minWeight)
	metrics.RecordSuggestionRejected(string(t))
}

// ShouldSuggest reports whether suggestions of this type should still be
// offered. It turns false once rejection history dominates: the weight has
// decayed below the cutoff, or rejects heavily outnumber accepts.
func (f *FeedbackStore) ShouldSuggest(_ context.Context, t model.EventType) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	p, ok := f.prefs[t]
	if !ok {
		return true
	}
	if p.Weight < suppressWeightBelow {
		return false
	}
	if p.Rejects >= suppressMinRejects && p.Rejects > 2*p.Accepts {
		return false
	}
	return true
}

// Weight returns the current ranking multiplier for the type (1.0 when no
// feedback has been recorded).
func (f *FeedbackStore) Weight(t model.EventType) float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if p, ok := f.prefs[t]; ok {
		return p.Weight
	}
	return initialWeight
}

// Preference returns a copy of the stored preference for the type.
func (f *FeedbackStore) Preference(t model.EventType) (Preference, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if p, ok := f.prefs[t]; ok {
		return *p, true
	}
	return Preference{}, false
}

// pref returns the preference for t, creating it lazily. Must be called
// with f.mu held for writing.
func (f *FeedbackStore) pref(t model.EventType) *Preference {
	p, ok := f.prefs[t]
	if !ok {
		p = &Preference{Weight: initialWeight}
		f.prefs[t] = p
	}
	return p
}
