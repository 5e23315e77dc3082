package service

import (
	"context"
	"testing"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

var baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func quizResult(id, userID string, correct, total int, at time.Time) models.ActivityResult {
	return models.ActivityResult{
		ID:           id,
		UserID:       userID,
		ActivityType: models.ActivityTypeQuiz,
		Timestamp:    at,
		Quiz:         &models.QuizDetails{CorrectAnswers: correct, TotalQuestions: total},
	}
}

func memoryResult(id, userID string, pairs, moves int, at time.Time) models.ActivityResult {
	return models.ActivityResult{
		ID:           id,
		UserID:       userID,
		ActivityType: models.ActivityTypeMemoryGame,
		Timestamp:    at,
		MemoryGame:   &models.MemoryGameDetails{Pairs: pairs, Moves: moves},
	}
}

func observation(id, userID string, e models.Emotion, at time.Time) models.EmotionObservation {
	return models.EmotionObservation{ID: id, UserID: userID, Role: models.RoleChild, Emotion: e, Timestamp: at}
}

func link(id, obsID, actID string, ct models.ContextType) models.EmotionActivityLink {
	return models.EmotionActivityLink{ID: id, EmotionObservationID: obsID, ActivityResultID: actID, ContextType: ct, Timestamp: baseTime}
}

// seededStore is an in-memory store preloaded with records
type seededStore struct {
	*repository.Store
}

func newSeededStore(t *testing.T) *seededStore {
	t.Helper()
	return &seededStore{Store: repository.NewMemoryStore()}
}

func (s *seededStore) addObservation(t *testing.T, obs models.EmotionObservation) {
	t.Helper()
	if _, err := s.Observations.Create(context.Background(), &obs); err != nil {
		t.Fatalf("create observation: %v", err)
	}
}

func (s *seededStore) addActivity(t *testing.T, a models.ActivityResult) {
	t.Helper()
	if _, err := s.Activities.Create(context.Background(), &a); err != nil {
		t.Fatalf("create activity: %v", err)
	}
}

func (s *seededStore) addLink(t *testing.T, l models.EmotionActivityLink) {
	t.Helper()
	if _, err := s.Links.Append(context.Background(), &l); err != nil {
		t.Fatalf("append link: %v", err)
	}
}

func (s *seededStore) builder() CorrelationBuilder {
	return NewCorrelationBuilder(s.Observations, s.Activities, s.Links)
}

// correlation builds a Correlation directly, for analyzer tests
func correlation(linkID string, act models.ActivityResult, e models.Emotion, ct models.ContextType) models.Correlation {
	score := NormalizePerformance(act)
	return models.Correlation{
		LinkID:             linkID,
		Emotion:            e,
		ActivityType:       act.ActivityType,
		ActivityResult:     act,
		EmotionObservation: observation("obs-"+linkID, act.UserID, e, act.Timestamp),
		ContextType:        ct,
		PerformanceMetric:  score.Value,
		IsEstimated:        score.Estimated,
	}
}

func emotionPtr(e models.Emotion) *models.Emotion { return &e }
func activityTypePtr(t models.ActivityType) *models.ActivityType { return &t }
func contextPtr(c models.ContextType) *models.ContextType { return &c }
func floatPtr(f float64) *float64 { return &f }

var (
	child   = models.Actor{UserID: "u1", Role: models.RoleChild}
	other   = models.Actor{UserID: "u2", Role: models.RoleChild}
	teacher = models.Actor{UserID: "t1", Role: models.RoleTeacher}
)
