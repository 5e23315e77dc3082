package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

func TestObservationService_Record(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewObservationService(store.Observations)
	ctx := context.Background()
	note := "before the quiz"

	obs, err := svc.Record(ctx, child, &models.CreateObservationRequest{Emotion: models.EmotionAnxious, Note: &note})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if obs.UserID != "u1" || obs.Role != models.RoleChild || obs.Emotion != models.EmotionAnxious {
		t.Errorf("Record() = %+v", obs)
	}
	if obs.Timestamp.IsZero() || ValidateUUIDv7(obs.ID) != nil {
		t.Errorf("Record() should default timestamp and id, got %v / %s", obs.Timestamp, obs.ID)
	}

	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	forChild, err := svc.Record(ctx, teacher, &models.CreateObservationRequest{UserID: "u1", Emotion: models.EmotionCalm, Timestamp: &at})
	if err != nil {
		t.Fatalf("teacher Record() error = %v", err)
	}
	if forChild.UserID != "u1" || forChild.Role != models.RoleTeacher || !forChild.Timestamp.Equal(at) {
		t.Errorf("teacher Record() = %+v", forChild)
	}
}

func TestObservationService_RecordValidation(t *testing.T) {
	svc := NewObservationService(repository.NewMemoryStore().Observations)
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   models.Actor
		req     models.CreateObservationRequest
		wantErr error
	}{
		{"unknown emotion", child, models.CreateObservationRequest{Emotion: "bored"}, ErrInvalidInput},
		{"unknown role", child, models.CreateObservationRequest{Emotion: models.EmotionHappy, Role: "parent"}, ErrInvalidInput},
		{"bad id", child, models.CreateObservationRequest{ID: "abc", Emotion: models.EmotionHappy}, ErrInvalidInput},
		{"child for another user", child, models.CreateObservationRequest{UserID: "u2", Emotion: models.EmotionHappy}, ErrForbidden},
		{"child as teacher", child, models.CreateObservationRequest{Emotion: models.EmotionHappy, Role: models.RoleTeacher}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Record(ctx, tt.actor, &tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Record() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestObservationService_Delete(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewObservationService(store.Observations)
	ctx := context.Background()

	obs, err := svc.Record(ctx, child, &models.CreateObservationRequest{Emotion: models.EmotionHappy})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, other, obs.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete(other) error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, teacher, obs.ID); err != nil {
		t.Errorf("Delete(teacher) error = %v", err)
	}
	if err := svc.Delete(ctx, child, obs.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(again) error = %v, want ErrNotFound", err)
	}

	list, err := svc.List(ctx, child, "u1")
	if err != nil || len(list) != 0 {
		t.Errorf("List() = %v (err %v), want empty", list, err)
	}
}

func TestObservationService_RecordDuplicateID(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewObservationService(store.Observations)
	ctx := context.Background()

	orig, err := svc.Record(ctx, child, &models.CreateObservationRequest{Emotion: models.EmotionHappy})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Record(ctx, other, &models.CreateObservationRequest{ID: orig.ID, Emotion: models.EmotionAngry})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Record(same id) error = %v, want *ConflictError", err)
	}
	if conflict.ID != orig.ID {
		t.Errorf("ConflictError.ID = %q, want %q", conflict.ID, orig.ID)
	}

	stored, err := store.Observations.GetByID(ctx, orig.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.UserID != "u1" || stored.Emotion != models.EmotionHappy {
		t.Errorf("stored = %s/%s, want u1/happy", stored.UserID, stored.Emotion)
	}
}
