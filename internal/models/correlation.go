package models

import "time"

// Correlation is the derived join of a link, its activity, its observation
// and the normalized performance score. It is never persisted.
type Correlation struct {
	LinkID             string             `json:"link_id"`
	Emotion            Emotion            `json:"emotion"`
	ActivityType       ActivityType       `json:"activity_type"`
	ActivityResult     ActivityResult     `json:"activity_result"`
	EmotionObservation EmotionObservation `json:"emotion_observation"`
	ContextType        ContextType        `json:"context_type"`
	PerformanceMetric  float64            `json:"performance_metric"`
	// IsEstimated is true when PerformanceMetric is the neutral fallback
	// rather than a measured value.
	IsEstimated bool `json:"is_estimated"`
}

// DateRange is an inclusive time window
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, bounds included.
// A zero Start or End leaves that side open.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// PerformanceRange is an inclusive performance window on the 0-100 scale
type PerformanceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, bounds included
func (r PerformanceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// CorrelationFilters narrows the set of correlations built for an analysis.
// Nil pointers and an empty UserID mean "no filter".
type CorrelationFilters struct {
	UserID           string            `json:"user_id,omitempty"`
	ActivityType     *ActivityType     `json:"activity_type,omitempty"`
	Emotion          *Emotion          `json:"emotion,omitempty"`
	ContextType      *ContextType      `json:"context_type,omitempty"`
	DateRange        *DateRange        `json:"date_range,omitempty"`
	PerformanceRange *PerformanceRange `json:"performance_range,omitempty"`
}
