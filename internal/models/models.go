package models

import (
	"encoding/json"
	"time"
)

// CreateObservationRequest represents the request to log an emotional state.
// UserID defaults to the caller; a teacher may log for a child.
type CreateObservationRequest struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Emotion   Emotion    `json:"emotion" binding:"required,emotion"`
	Role      Role       `json:"role" binding:"omitempty,role"`
	Timestamp *time.Time `json:"timestamp"`
	Note      *string    `json:"note" binding:"omitempty,max=500"`
}

// CreateActivityResultRequest represents the request to record an activity outcome
type CreateActivityResultRequest struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	ActivityType    ActivityType       `json:"activity_type" binding:"required,activity_type"`
	Timestamp       *time.Time         `json:"timestamp"`
	DurationSeconds float64            `json:"duration_seconds" binding:"gte=0"`
	Score           *float64           `json:"score"`
	Quiz            *QuizDetails       `json:"quiz"`
	MemoryGame      *MemoryGameDetails `json:"memory_game"`
}

// CreateLinkRequest represents the request to link an observation to an activity
type CreateLinkRequest struct {
	EmotionObservationID string      `json:"emotion_observation_id" binding:"required"`
	ActivityResultID     string      `json:"activity_result_id" binding:"required"`
	ContextType          ContextType `json:"context_type" binding:"required,context_type"`
}

// UpdateRecommendationRequest marks a recommendation as acted upon. An absent
// outcome leaves the stored value alone; an explicit null clears it.
type UpdateRecommendationRequest struct {
	Applied *bool          `json:"applied"`
	Outcome NullableString `json:"outcome"`
}

// IdempotencyRecord is a cached response for a replayed mutating request
type IdempotencyRecord struct {
	Key          string          `json:"key"`
	Route        string          `json:"route"`
	UserID       string          `json:"user_id"`
	ResponseBody json.RawMessage `json:"response_body"`
	StatusCode   int             `json:"status_code"`
	CreatedAt    time.Time       `json:"created_at"`
}
