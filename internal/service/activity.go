package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

type activityService struct {
	actRepo repository.ActivityResultRepository
	now     func() time.Time
}

// NewActivityService creates a new activity result service
func NewActivityService(actRepo repository.ActivityResultRepository) ActivityService {
	return &activityService{actRepo: actRepo, now: time.Now}
}

func (s *activityService) Record(ctx context.Context, actor models.Actor, req *models.CreateActivityResultRequest) (*models.ActivityResult, error) {
	if err := validateActivityRequest(req); err != nil {
		return nil, err
	}

	userID, err := ownerFor(actor, req.UserID)
	if err != nil {
		return nil, err
	}

	id, err := resolveID(req.ID)
	if err != nil {
		return nil, err
	}

	timestamp := s.now()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	result := &models.ActivityResult{
		ID:              id,
		UserID:          userID,
		ActivityType:    req.ActivityType,
		Timestamp:       timestamp.UTC(),
		DurationSeconds: req.DurationSeconds,
		Score:           req.Score,
		Quiz:            req.Quiz,
		MemoryGame:      req.MemoryGame,
	}

	created, err := s.actRepo.Create(ctx, result)
	if err != nil {
		return nil, createErr(err, "activity result", id)
	}
	return created, nil
}

// validateActivityRequest checks that the detail block matches the activity
// type and that no count is negative.
func validateActivityRequest(req *models.CreateActivityResultRequest) error {
	if !req.ActivityType.Valid() {
		return invalid("activity_type", "unknown activity type %q", req.ActivityType)
	}
	if req.DurationSeconds < 0 {
		return invalid("duration_seconds", "must not be negative")
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		return invalid("score", "must be between 0 and 100")
	}

	switch req.ActivityType {
	case models.ActivityTypeQuiz:
		if req.MemoryGame != nil {
			return invalid("memory_game", "not allowed for a quiz")
		}
		if q := req.Quiz; q != nil {
			if q.CorrectAnswers < 0 || q.TotalQuestions < 0 {
				return invalid("quiz", "counts must not be negative")
			}
			if q.CorrectAnswers > q.TotalQuestions {
				return invalid("quiz", "correct answers exceed total questions")
			}
		}
	case models.ActivityTypeMemoryGame:
		if req.Quiz != nil {
			return invalid("quiz", "not allowed for a memory game")
		}
		if m := req.MemoryGame; m != nil {
			if m.Pairs < 0 || m.Moves < 0 {
				return invalid("memory_game", "counts must not be negative")
			}
			if m.TimeElapsed != nil && *m.TimeElapsed < 0 {
				return invalid("memory_game", "time elapsed must not be negative")
			}
		}
	default:
		if req.Quiz != nil || req.MemoryGame != nil {
			return invalid("activity_type", "%s results carry no detail block", req.ActivityType)
		}
	}
	return nil
}

func (s *activityService) List(ctx context.Context, actor models.Actor, userID string) ([]models.ActivityResult, error) {
	if !actor.CanAccess(userID) {
		return nil, ErrForbidden
	}
	results, err := s.actRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity results: %w", err)
	}
	return results, nil
}

// Delete removes an activity result. Links that reference it are left in
// place and skipped by later analyses.
func (s *activityService) Delete(ctx context.Context, actor models.Actor, id string) error {
	result, err := s.actRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "activity result", id)
	}
	if !actor.CanAccess(result.UserID) {
		return ErrForbidden
	}

	if err := s.actRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return &NotFoundError{Entity: "activity result", ID: id}
		}
		return fmt.Errorf("failed to delete activity result: %w", err)
	}
	return nil
}
