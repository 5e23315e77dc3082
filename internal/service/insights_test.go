package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// seedInsightsStore gives u1 five 90% quizzes started while happy and u2 one
// quiz, so u1 qualifies for exactly one optimal-state recommendation.
func seedInsightsStore(t *testing.T) *seededStore {
	s := newSeededStore(t)
	for i := 0; i < 5; i++ {
		at := baseTime.Add(time.Duration(i) * time.Hour)
		actID := fmt.Sprintf("a%d", i)
		obsID := fmt.Sprintf("o%d", i)
		s.addActivity(t, quizResult(actID, "u1", 9, 10, at))
		s.addObservation(t, observation(obsID, "u1", models.EmotionHappy, at))
		s.addLink(t, link(fmt.Sprintf("l%d", i), obsID, actID, models.ContextBefore))
	}
	s.addActivity(t, quizResult("b1", "u2", 3, 10, baseTime))
	s.addObservation(t, observation("p1", "u2", models.EmotionSad, baseTime))
	s.addLink(t, link("m1", "p1", "b1", models.ContextBefore))
	return s
}

func newInsights(s *seededStore) *insightsService {
	svc := NewInsightsService(s.builder(), s.Observations, s.Recommendations, time.UTC).(*insightsService)
	svc.now = func() time.Time { return baseTime.Add(24 * time.Hour) }
	return svc
}

func TestInsights_Scope(t *testing.T) {
	svc := newInsights(seedInsightsStore(t))
	ctx := context.Background()

	own, err := svc.Correlations(ctx, child, models.CorrelationFilters{})
	if err != nil {
		t.Fatalf("Correlations(child) error = %v", err)
	}
	if len(own) != 5 {
		t.Errorf("child sees %d correlations, want 5", len(own))
	}

	all, err := svc.Correlations(ctx, teacher, models.CorrelationFilters{})
	if err != nil {
		t.Fatalf("Correlations(teacher) error = %v", err)
	}
	if len(all) != 6 {
		t.Errorf("teacher sees %d correlations, want 6", len(all))
	}

	if _, err := svc.Analyze(ctx, child, models.CorrelationFilters{UserID: "u2"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Analyze(child, u2) error = %v, want ErrForbidden", err)
	}
}

func TestInsights_Analyze(t *testing.T) {
	svc := newInsights(seedInsightsStore(t))

	analysis, err := svc.Analyze(context.Background(), teacher, models.CorrelationFilters{UserID: "u1"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if analysis.TotalCorrelations != 5 {
		t.Errorf("TotalCorrelations = %d, want 5", analysis.TotalCorrelations)
	}
	if len(analysis.OptimalStates) != 1 || analysis.OptimalStates[0].Emotion != models.EmotionHappy {
		t.Errorf("OptimalStates = %+v, want happy only", analysis.OptimalStates)
	}
}

func TestInsights_RecommendPersists(t *testing.T) {
	s := seedInsightsStore(t)
	svc := newInsights(s)
	ctx := context.Background()

	recs, err := svc.Recommend(ctx, child, models.CorrelationFilters{})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Recommend() returned %d recommendations, want 1", len(recs))
	}
	rec := recs[0]
	if rec.UserID != "u1" || rec.TargetEmotion != models.EmotionHappy || rec.RecommendedActivityType != models.ActivityTypeQuiz {
		t.Errorf("recommendation = %+v", rec)
	}
	if rec.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", rec.Confidence)
	}
	if !rec.Timestamp.Equal(baseTime.Add(24 * time.Hour)) {
		t.Errorf("Timestamp = %v, want injected clock", rec.Timestamp)
	}

	stored, err := svc.ListRecommendations(ctx, child, "u1")
	if err != nil {
		t.Fatalf("ListRecommendations() error = %v", err)
	}
	if len(stored) != 1 || stored[0].ID != rec.ID {
		t.Errorf("stored = %+v, want the generated recommendation", stored)
	}

	if _, err := svc.ListRecommendations(ctx, other, "u1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("ListRecommendations(other) error = %v, want ErrForbidden", err)
	}

	none, err := svc.Recommend(ctx, other, models.CorrelationFilters{})
	if err != nil {
		t.Fatalf("Recommend(other) error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Recommend(other) = %+v, want none", none)
	}
}

func TestInsights_MarkRecommendation(t *testing.T) {
	svc := newInsights(seedInsightsStore(t))
	ctx := context.Background()

	recs, err := svc.Recommend(ctx, child, models.CorrelationFilters{})
	if err != nil || len(recs) != 1 {
		t.Fatalf("Recommend() = %v, %v", recs, err)
	}
	id := recs[0].ID
	applied := true

	updated, err := svc.MarkRecommendation(ctx, child, id, &models.UpdateRecommendationRequest{
		Applied: &applied,
		Outcome: models.NullableString{Value: "helped", Valid: true, Set: true},
	})
	if err != nil {
		t.Fatalf("MarkRecommendation() error = %v", err)
	}
	if !updated.Applied || updated.Outcome == nil || *updated.Outcome != "helped" {
		t.Errorf("after set: applied=%v outcome=%v", updated.Applied, updated.Outcome)
	}

	// absent outcome and applied leave both alone
	updated, err = svc.MarkRecommendation(ctx, child, id, &models.UpdateRecommendationRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Applied || updated.Outcome == nil || *updated.Outcome != "helped" {
		t.Errorf("after no-op: applied=%v outcome=%v", updated.Applied, updated.Outcome)
	}

	// explicit null clears the outcome
	updated, err = svc.MarkRecommendation(ctx, child, id, &models.UpdateRecommendationRequest{
		Outcome: models.NullableString{Set: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Outcome != nil {
		t.Errorf("after null: outcome = %q, want nil", *updated.Outcome)
	}

	if _, err := svc.MarkRecommendation(ctx, other, id, &models.UpdateRecommendationRequest{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("MarkRecommendation(other) error = %v, want ErrForbidden", err)
	}
	if _, err := svc.MarkRecommendation(ctx, child, "missing", &models.UpdateRecommendationRequest{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkRecommendation(missing) error = %v, want ErrNotFound", err)
	}
}

func TestInsights_Patterns(t *testing.T) {
	s := seedInsightsStore(t)
	s.addObservation(t, observation("late", "u1", models.EmotionTired, baseTime.Add(72*time.Hour)))
	svc := newInsights(s)
	ctx := context.Background()

	all, err := svc.Patterns(ctx, child, "", nil)
	if err != nil {
		t.Fatalf("Patterns() error = %v", err)
	}
	if all.Total != 6 {
		t.Errorf("Total = %d, want 6", all.Total)
	}

	window := &models.DateRange{Start: baseTime, End: baseTime.Add(24 * time.Hour)}
	ranged, err := svc.Patterns(ctx, child, "u1", window)
	if err != nil {
		t.Fatalf("Patterns(range) error = %v", err)
	}
	if ranged.Total != 5 {
		t.Errorf("ranged Total = %d, want 5", ranged.Total)
	}
	if ranged.HourlyPatterns[9].DominantEmotion == nil || *ranged.HourlyPatterns[9].DominantEmotion != models.EmotionHappy {
		t.Errorf("09:00 dominant = %v, want happy", ranged.HourlyPatterns[9].DominantEmotion)
	}

	if _, err := svc.Patterns(ctx, child, "u2", nil); !errors.Is(err, ErrForbidden) {
		t.Errorf("Patterns(u2) error = %v, want ErrForbidden", err)
	}
}
