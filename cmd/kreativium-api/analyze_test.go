package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/config"
	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/service"
)

func TestParseRange(t *testing.T) {
	r, err := parseRange("", "")
	if err != nil || r != nil {
		t.Errorf("parseRange(empty) = %v, %v; want nil, nil", r, err)
	}

	r, err = parseRange("2025-03-01T00:00:00Z", "")
	if err != nil {
		t.Fatalf("parseRange() error = %v", err)
	}
	if r.Start.IsZero() || !r.End.IsZero() {
		t.Errorf("parseRange(from only) = %+v", r)
	}

	if _, err := parseRange("yesterday", ""); err == nil {
		t.Error("parseRange(invalid) should fail")
	}
}

func TestBuildReport(t *testing.T) {
	ctx := context.Background()
	store, err := openStore(config.StorageConfig{Driver: config.DriverMemory})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	obs := &models.EmotionObservation{ID: "o1", UserID: "u1", Role: models.RoleChild, Emotion: models.EmotionCalm, Timestamp: at}
	act := &models.ActivityResult{ID: "a1", UserID: "u1", ActivityType: models.ActivityTypeQuiz, Timestamp: at,
		Quiz: &models.QuizDetails{CorrectAnswers: 3, TotalQuestions: 4}}
	if _, err := store.Observations.Create(ctx, obs); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Activities.Create(ctx, act); err != nil {
		t.Fatal(err)
	}
	links := service.NewLinkService(store.Observations, store.Activities, store.Links)
	if _, err := links.CreateLink(ctx, "o1", "a1", models.ContextBefore); err != nil {
		t.Fatal(err)
	}

	builder := service.NewCorrelationBuilder(store.Observations, store.Activities, store.Links)
	report, err := buildReport(ctx, builder, models.CorrelationFilters{UserID: "u1"}, at)
	if err != nil {
		t.Fatalf("buildReport() error = %v", err)
	}
	if report.Correlations != 1 {
		t.Errorf("Correlations = %d, want 1", report.Correlations)
	}
	if got := report.Analysis.PerformanceByPreEmotion[models.EmotionCalm].Average; got != 75 {
		t.Errorf("calm average = %v, want 75", got)
	}
	if len(report.Recommendations) != 0 {
		t.Errorf("Recommendations = %+v, want none for one sample", report.Recommendations)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, report); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"user_id": "u1"`) {
		t.Errorf("report JSON missing user id: %s", buf.String())
	}
}
