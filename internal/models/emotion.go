package models

import (
	"fmt"
	"time"
)

// Emotion is one of the fixed emotional states a user can log
type Emotion string

const (
	EmotionHappy      Emotion = "happy"
	EmotionSad        Emotion = "sad"
	EmotionAnxious    Emotion = "anxious"
	EmotionAngry      Emotion = "angry"
	EmotionCalm       Emotion = "calm"
	EmotionExcited    Emotion = "excited"
	EmotionTired      Emotion = "tired"
	EmotionFrustrated Emotion = "frustrated"
)

// EmotionCount is the number of emotions in AllEmotions
const EmotionCount = 8

// AllEmotions is the canonical emotion ordering. Heatmap columns, matrix rows
// and every tie-break in the analysis follow this order.
var AllEmotions = [EmotionCount]Emotion{
	EmotionHappy,
	EmotionSad,
	EmotionAnxious,
	EmotionAngry,
	EmotionCalm,
	EmotionExcited,
	EmotionTired,
	EmotionFrustrated,
}

// Index returns the position of the emotion in AllEmotions, or -1 if unknown
func (e Emotion) Index() int {
	switch e {
	case EmotionHappy:
		return 0
	case EmotionSad:
		return 1
	case EmotionAnxious:
		return 2
	case EmotionAngry:
		return 3
	case EmotionCalm:
		return 4
	case EmotionExcited:
		return 5
	case EmotionTired:
		return 6
	case EmotionFrustrated:
		return 7
	default:
		return -1
	}
}

// Valid reports whether e is a known emotion
func (e Emotion) Valid() bool {
	return e.Index() >= 0
}

// ParseEmotion converts a string to an Emotion
func ParseEmotion(s string) (Emotion, error) {
	e := Emotion(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown emotion %q", s)
	}
	return e, nil
}

// Role identifies who logged an observation
type Role string

const (
	RoleChild   Role = "child"
	RoleTeacher Role = "teacher"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleChild, RoleTeacher:
		return true
	default:
		return false
	}
}

// EmotionObservation is a single logged emotional state. Observations are
// immutable once created.
type EmotionObservation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	Emotion   Emotion   `json:"emotion"`
	Timestamp time.Time `json:"timestamp"`
	Note      *string   `json:"note,omitempty"`
}

// Actor is the authenticated caller on whose behalf an operation runs
type Actor struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// IsTeacher reports whether the actor has the teacher role
func (a Actor) IsTeacher() bool {
	return a.Role == RoleTeacher
}

// CanAccess reports whether the actor may read or modify data owned by userID
func (a Actor) CanAccess(userID string) bool {
	return a.UserID == userID || a.IsTeacher()
}
