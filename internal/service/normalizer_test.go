package service

import (
	"testing"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

func TestNormalizePerformance(t *testing.T) {
	tests := []struct {
		name          string
		result        models.ActivityResult
		want          float64
		wantEstimated bool
	}{
		{"quiz 7 of 10", quizResult("a", "u1", 7, 10, baseTime), 70, false},
		{"quiz rounds", quizResult("a", "u1", 2, 3, baseTime), 67, false},
		{"quiz without questions falls back", quizResult("a", "u1", 0, 0, baseTime), EstimatedPerformance, true},
		{"memory perfect", memoryResult("a", "u1", 8, 16, baseTime), 100, false},
		{"memory half", memoryResult("a", "u1", 8, 32, baseTime), 50, false},
		{"memory efficiency capped", memoryResult("a", "u1", 8, 10, baseTime), 100, false},
		{"memory without moves falls back", memoryResult("a", "u1", 8, 0, baseTime), EstimatedPerformance, true},
		{
			"score used when no details",
			models.ActivityResult{ActivityType: models.ActivityTypeOther, Score: floatPtr(83.5)},
			83.5, false,
		},
		{
			"score clamped high",
			models.ActivityResult{ActivityType: models.ActivityTypeOther, Score: floatPtr(140)},
			100, false,
		},
		{
			"score clamped low",
			models.ActivityResult{ActivityType: models.ActivityTypeOther, Score: floatPtr(-3)},
			0, false,
		},
		{
			"quiz missing details uses score",
			models.ActivityResult{ActivityType: models.ActivityTypeQuiz, Score: floatPtr(40)},
			40, false,
		},
		{
			"nothing measurable",
			models.ActivityResult{ActivityType: models.ActivityTypeOther},
			EstimatedPerformance, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePerformance(tt.result)
			if got.Value != tt.want {
				t.Errorf("NormalizePerformance() = %v, want %v", got.Value, tt.want)
			}
			if got.Estimated != tt.wantEstimated {
				t.Errorf("Estimated = %v, want %v", got.Estimated, tt.wantEstimated)
			}
		})
	}
}

func TestNormalizePerformanceBounds(t *testing.T) {
	for correct := -2; correct <= 12; correct++ {
		for total := -1; total <= 10; total++ {
			got := NormalizePerformance(quizResult("a", "u1", correct, total, baseTime)).Value
			if got < 0 || got > 100 {
				t.Fatalf("quiz %d/%d normalized to %v", correct, total, got)
			}
		}
	}
	for pairs := -1; pairs <= 20; pairs++ {
		for moves := -1; moves <= 40; moves += 3 {
			got := NormalizePerformance(memoryResult("a", "u1", pairs, moves, baseTime)).Value
			if got < 0 || got > 100 {
				t.Fatalf("memory pairs=%d moves=%d normalized to %v", pairs, moves, got)
			}
		}
	}
}
