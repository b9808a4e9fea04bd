package model

import "time"

// EventType classifies a suggested event.
type EventType string

// Suggestion event types, in classification priority order.
const (
	EventTypeHoliday     EventType = "holiday"
	EventTypeWeekend     EventType = "weekend"
	EventTypeCelebration EventType = "celebration"
	EventTypeGeneral     EventType = "general"
)

// EventSuggestion is a scored, typed candidate event offered to the user
// for review.
type EventSuggestion struct {
	ID         string
	Title      string
	Type       EventType
	StartDate  time.Time
	EndDate    time.Time
	PhotoIDs   []string
	PeopleIDs  []string
	Confidence float64 // normalized to [0,1]
	Metadata   map[string]string
}
