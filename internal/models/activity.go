package models

import (
	"fmt"
	"time"
)

// ActivityType represents the kind of learning activity a result came from
type ActivityType string

const (
	ActivityTypeQuiz       ActivityType = "quiz"
	ActivityTypeMemoryGame ActivityType = "memory_game"
	ActivityTypeOther      ActivityType = "other"
)

// ActivityTypeCount is the number of known activity types
const ActivityTypeCount = 3

// AllActivityTypes lists activity types in their canonical order
var AllActivityTypes = [ActivityTypeCount]ActivityType{
	ActivityTypeQuiz,
	ActivityTypeMemoryGame,
	ActivityTypeOther,
}

// Valid reports whether t is a known activity type
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTypeQuiz, ActivityTypeMemoryGame, ActivityTypeOther:
		return true
	default:
		return false
	}
}

// Index returns the canonical position of the activity type, or -1 if unknown
func (t ActivityType) Index() int {
	for i, at := range AllActivityTypes {
		if at == t {
			return i
		}
	}
	return -1
}

// ParseActivityType converts a string to an ActivityType
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown activity type %q", s)
	}
	return t, nil
}

// QuizDetails holds the quiz-specific fields of an activity result
type QuizDetails struct {
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	CategoryID     *string `json:"category_id,omitempty"`
}

// MemoryGameDetails holds the memory-game-specific fields of an activity result
type MemoryGameDetails struct {
	Pairs       int      `json:"pairs"`
	Moves       int      `json:"moves"`
	TimeElapsed *float64 `json:"time_elapsed,omitempty"`
}

// ActivityResult is the outcome record of one completed learning activity.
// Exactly one of Quiz or MemoryGame is expected to be set for the matching
// activity type; Score is an optional pre-computed 0-100 score.
type ActivityResult struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	ActivityType    ActivityType       `json:"activity_type"`
	Timestamp       time.Time          `json:"timestamp"`
	DurationSeconds float64            `json:"duration_seconds"`
	Score           *float64           `json:"score,omitempty"`
	Quiz            *QuizDetails       `json:"quiz,omitempty"`
	MemoryGame      *MemoryGameDetails `json:"memory_game,omitempty"`
}
