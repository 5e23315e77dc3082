package service

import (
	"context"
	"errors"
	"testing"

	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

func TestActivityService_RecordValidation(t *testing.T) {
	svc := NewActivityService(repository.NewMemoryStore().Activities)
	ctx := context.Background()
	negative := -1.0

	tests := []struct {
		name    string
		req     models.CreateActivityResultRequest
		wantErr error
	}{
		{"valid quiz", models.CreateActivityResultRequest{
			ActivityType: models.ActivityTypeQuiz,
			Quiz:         &models.QuizDetails{CorrectAnswers: 7, TotalQuestions: 10},
		}, nil},
		{"valid memory game", models.CreateActivityResultRequest{
			ActivityType: models.ActivityTypeMemoryGame,
			MemoryGame:   &models.MemoryGameDetails{Pairs: 8, Moves: 20},
		}, nil},
		{"other with score", models.CreateActivityResultRequest{ActivityType: models.ActivityTypeOther, Score: floatPtr(70)}, nil},
		{"unknown type", models.CreateActivityResultRequest{ActivityType: "puzzle"}, ErrInvalidInput},
		{"quiz with memory block", models.CreateActivityResultRequest{
			ActivityType: models.ActivityTypeQuiz,
			MemoryGame:   &models.MemoryGameDetails{Pairs: 1, Moves: 2},
		}, ErrInvalidInput},
		{"memory with quiz block", models.CreateActivityResultRequest{
			ActivityType: models.ActivityTypeMemoryGame,
			Quiz:         &models.QuizDetails{CorrectAnswers: 1, TotalQuestions: 2},
		}, ErrInvalidInput},
		{"negative moves", models.CreateActivityResultRequest{
			ActivityType: models.ActivityTypeMemoryGame,
			MemoryGame:   &models.MemoryGameDetails{Pairs: 1, Moves: -2},
		}, ErrInvalidInput},
		{"negative elapsed", models.CreateActivityResultRequest{
			ActivityType: models.ActivityTypeMemoryGame,
			MemoryGame:   &models.MemoryGameDetails{Pairs: 1, Moves: 2, TimeElapsed: &negative},
		}, ErrInvalidInput},
		{"more correct than asked", models.CreateActivityResultRequest{
			ActivityType: models.ActivityTypeQuiz,
			Quiz:         &models.QuizDetails{CorrectAnswers: 11, TotalQuestions: 10},
		}, ErrInvalidInput},
		{"score out of range", models.CreateActivityResultRequest{ActivityType: models.ActivityTypeOther, Score: floatPtr(101)}, ErrInvalidInput},
		{"negative duration", models.CreateActivityResultRequest{ActivityType: models.ActivityTypeOther, DurationSeconds: -1}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(ctx, child, &tt.req)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Record() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Record() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestActivityService_ListAndDelete(t *testing.T) {
	svc := NewActivityService(repository.NewMemoryStore().Activities)
	ctx := context.Background()

	result, err := svc.Record(ctx, child, &models.CreateActivityResultRequest{ActivityType: models.ActivityTypeOther})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.List(ctx, other, "u1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("List(other) error = %v, want ErrForbidden", err)
	}
	list, err := svc.List(ctx, teacher, "u1")
	if err != nil || len(list) != 1 {
		t.Errorf("List(teacher) = %d results (err %v), want 1", len(list), err)
	}

	if err := svc.Delete(ctx, other, result.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete(other) error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, child, result.ID); err != nil {
		t.Errorf("Delete(owner) error = %v", err)
	}
	if err := svc.Delete(ctx, child, result.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(again) error = %v, want ErrNotFound", err)
	}
}

func TestActivityService_RecordDuplicateID(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewActivityService(store.Activities)
	ctx := context.Background()

	orig, err := svc.Record(ctx, child, &models.CreateActivityResultRequest{ActivityType: models.ActivityTypeOther, Score: floatPtr(80)})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Record(ctx, other, &models.CreateActivityResultRequest{ID: orig.ID, ActivityType: models.ActivityTypeOther, Score: floatPtr(10)})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Record(same id) error = %v, want ErrConflict", err)
	}

	stored, err := store.Activities.GetByID(ctx, orig.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.UserID != "u1" || *stored.Score != 80 {
		t.Errorf("stored = %s/%v, want u1/80", stored.UserID, *stored.Score)
	}
}
