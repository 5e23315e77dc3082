package repository

import (
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// GORM models. Ids are UUIDv7 strings, so ordering by id is creation order.

type observationRow struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	UserID    string    `gorm:"type:varchar(64);index;not null"`
	Role      string    `gorm:"type:varchar(16);not null"`
	Emotion   string    `gorm:"type:varchar(16);index;not null"`
	Timestamp time.Time `gorm:"index;not null"`
	Note      *string   `gorm:"type:text"`
}

func (observationRow) TableName() string { return "emotion_observations" }

func observationToRow(o *models.EmotionObservation) *observationRow {
	return &observationRow{
		ID:        o.ID,
		UserID:    o.UserID,
		Role:      string(o.Role),
		Emotion:   string(o.Emotion),
		Timestamp: o.Timestamp.UTC(),
		Note:      o.Note,
	}
}

func (r *observationRow) toModel() models.EmotionObservation {
	return models.EmotionObservation{
		ID:        r.ID,
		UserID:    r.UserID,
		Role:      models.Role(r.Role),
		Emotion:   models.Emotion(r.Emotion),
		Timestamp: r.Timestamp.UTC(),
		Note:      r.Note,
	}
}

type activityRow struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)"`
	UserID          string    `gorm:"type:varchar(64);index;not null"`
	ActivityType    string    `gorm:"type:varchar(32);index;not null"`
	Timestamp       time.Time `gorm:"index;not null"`
	DurationSeconds float64   `gorm:"not null;default:0"`
	Score           *float64
	CorrectAnswers  *int
	TotalQuestions  *int
	CategoryID      *string `gorm:"type:varchar(64)"`
	Pairs           *int
	Moves           *int
	TimeElapsed     *float64
}

func (activityRow) TableName() string { return "activity_results" }

func activityToRow(a *models.ActivityResult) *activityRow {
	row := &activityRow{
		ID:              a.ID,
		UserID:          a.UserID,
		ActivityType:    string(a.ActivityType),
		Timestamp:       a.Timestamp.UTC(),
		DurationSeconds: a.DurationSeconds,
		Score:           a.Score,
	}
	if a.Quiz != nil {
		correct, total := a.Quiz.CorrectAnswers, a.Quiz.TotalQuestions
		row.CorrectAnswers = &correct
		row.TotalQuestions = &total
		row.CategoryID = a.Quiz.CategoryID
	}
	if a.MemoryGame != nil {
		pairs, moves := a.MemoryGame.Pairs, a.MemoryGame.Moves
		row.Pairs = &pairs
		row.Moves = &moves
		row.TimeElapsed = a.MemoryGame.TimeElapsed
	}
	return row
}

func (r *activityRow) toModel() models.ActivityResult {
	result := models.ActivityResult{
		ID:              r.ID,
		UserID:          r.UserID,
		ActivityType:    models.ActivityType(r.ActivityType),
		Timestamp:       r.Timestamp.UTC(),
		DurationSeconds: r.DurationSeconds,
		Score:           r.Score,
	}
	if r.CorrectAnswers != nil || r.TotalQuestions != nil {
		result.Quiz = &models.QuizDetails{
			CorrectAnswers: derefInt(r.CorrectAnswers),
			TotalQuestions: derefInt(r.TotalQuestions),
			CategoryID:     r.CategoryID,
		}
	}
	if r.Pairs != nil || r.Moves != nil {
		result.MemoryGame = &models.MemoryGameDetails{
			Pairs:       derefInt(r.Pairs),
			Moves:       derefInt(r.Moves),
			TimeElapsed: r.TimeElapsed,
		}
	}
	return result
}

type linkRow struct {
	ID                   string    `gorm:"primaryKey;type:varchar(64)"`
	EmotionObservationID string    `gorm:"type:varchar(64);index;not null"`
	ActivityResultID     string    `gorm:"type:varchar(64);index;not null"`
	ContextType          string    `gorm:"type:varchar(8);not null"`
	Timestamp            time.Time `gorm:"not null"`
}

func (linkRow) TableName() string { return "emotion_activity_links" }

func linkToRow(l *models.EmotionActivityLink) *linkRow {
	return &linkRow{
		ID:                   l.ID,
		EmotionObservationID: l.EmotionObservationID,
		ActivityResultID:     l.ActivityResultID,
		ContextType:          string(l.ContextType),
		Timestamp:            l.Timestamp.UTC(),
	}
}

func (r *linkRow) toModel() models.EmotionActivityLink {
	return models.EmotionActivityLink{
		ID:                   r.ID,
		EmotionObservationID: r.EmotionObservationID,
		ActivityResultID:     r.ActivityResultID,
		ContextType:          models.ContextType(r.ContextType),
		Timestamp:            r.Timestamp.UTC(),
	}
}

type recommendationRow struct {
	ID                      string    `gorm:"primaryKey;type:varchar(64)"`
	UserID                  string    `gorm:"type:varchar(64);index;not null"`
	TargetEmotion           string    `gorm:"type:varchar(16);not null"`
	RecommendedActivityType string    `gorm:"type:varchar(32);not null"`
	Reasoning               string    `gorm:"type:text;not null"`
	Confidence              float64   `gorm:"not null"`
	Source                  string    `gorm:"type:varchar(32);not null"`
	Timestamp               time.Time `gorm:"index;not null"`
	Applied                 bool      `gorm:"not null;default:false"`
	Outcome                 *string   `gorm:"type:text"`
}

func (recommendationRow) TableName() string { return "recommendations" }

func recommendationToRow(r *models.Recommendation) *recommendationRow {
	return &recommendationRow{
		ID:                      r.ID,
		UserID:                  r.UserID,
		TargetEmotion:           string(r.TargetEmotion),
		RecommendedActivityType: string(r.RecommendedActivityType),
		Reasoning:               r.Reasoning,
		Confidence:              r.Confidence,
		Source:                  string(r.Source),
		Timestamp:               r.Timestamp.UTC(),
		Applied:                 r.Applied,
		Outcome:                 r.Outcome,
	}
}

func (r *recommendationRow) toModel() models.Recommendation {
	return models.Recommendation{
		ID:                      r.ID,
		UserID:                  r.UserID,
		TargetEmotion:           models.Emotion(r.TargetEmotion),
		RecommendedActivityType: models.ActivityType(r.RecommendedActivityType),
		Reasoning:               r.Reasoning,
		Confidence:              r.Confidence,
		Source:                  models.RecommendationSource(r.Source),
		Timestamp:               r.Timestamp.UTC(),
		Applied:                 r.Applied,
		Outcome:                 r.Outcome,
	}
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
