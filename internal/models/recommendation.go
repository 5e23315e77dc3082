package models

import "time"

// RecommendationSource records which heuristic produced a recommendation
type RecommendationSource string

const (
	RecommendationSourceOptimalState RecommendationSource = "optimal_state"
	RecommendationSourceShift        RecommendationSource = "emotional_shift"
)

// Recommendation is a ranked, explained suggestion derived from an analysis.
// Only Applied and Outcome change after creation.
type Recommendation struct {
	ID                      string               `json:"id"`
	UserID                  string               `json:"user_id"`
	TargetEmotion           Emotion              `json:"target_emotion"`
	RecommendedActivityType ActivityType         `json:"recommended_activity_type"`
	Reasoning               string               `json:"reasoning"`
	Confidence              float64              `json:"confidence"`
	Source                  RecommendationSource `json:"source"`
	Timestamp               time.Time            `json:"timestamp"`
	Applied                 bool                 `json:"applied"`
	Outcome                 *string              `json:"outcome,omitempty"`
}
