package models

import (
	"fmt"
	"time"
)

// ContextType tags whether an observation was logged before or after an activity
type ContextType string

const (
	ContextBefore ContextType = "before"
	ContextAfter  ContextType = "after"
)

// Valid reports whether c is a known context type
func (c ContextType) Valid() bool {
	return c == ContextBefore || c == ContextAfter
}

// ParseContextType converts a string to a ContextType
func ParseContextType(s string) (ContextType, error) {
	c := ContextType(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown context type %q", s)
	}
	return c, nil
}

// EmotionActivityLink associates one observation with one activity instance.
// The store does not enforce uniqueness: an activity may carry several links
// of the same context type.
type EmotionActivityLink struct {
	ID                   string      `json:"id"`
	EmotionObservationID string      `json:"emotion_observation_id"`
	ActivityResultID     string      `json:"activity_result_id"`
	ContextType          ContextType `json:"context_type"`
	Timestamp            time.Time   `json:"timestamp"`
}
