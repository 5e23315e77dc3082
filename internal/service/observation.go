package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

type observationService struct {
	obsRepo repository.ObservationRepository
	now     func() time.Time
}

// NewObservationService creates a new observation service
func NewObservationService(obsRepo repository.ObservationRepository) ObservationService {
	return &observationService{obsRepo: obsRepo, now: time.Now}
}

func (s *observationService) Record(ctx context.Context, actor models.Actor, req *models.CreateObservationRequest) (*models.EmotionObservation, error) {
	if !req.Emotion.Valid() {
		return nil, invalid("emotion", "unknown emotion %q", req.Emotion)
	}

	role := req.Role
	if role == "" {
		role = actor.Role
	}
	if !role.Valid() {
		return nil, invalid("role", "unknown role %q", role)
	}
	if role == models.RoleTeacher && !actor.IsTeacher() {
		return nil, invalid("role", "only a teacher may record a teacher observation")
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

	obs := &models.EmotionObservation{
		ID:        id,
		UserID:    userID,
		Role:      role,
		Emotion:   req.Emotion,
		Timestamp: timestamp.UTC(),
		Note:      req.Note,
	}

	created, err := s.obsRepo.Create(ctx, obs)
	if err != nil {
		return nil, createErr(err, "observation", id)
	}
	return created, nil
}

func (s *observationService) List(ctx context.Context, actor models.Actor, userID string) ([]models.EmotionObservation, error) {
	if !actor.CanAccess(userID) {
		return nil, ErrForbidden
	}
	observations, err := s.obsRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	return observations, nil
}

// Delete removes an observation. Links that reference it are left in place
// and skipped by later analyses.
func (s *observationService) Delete(ctx context.Context, actor models.Actor, id string) error {
	obs, err := s.obsRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "observation", id)
	}
	if !actor.CanAccess(obs.UserID) {
		return ErrForbidden
	}

	if err := s.obsRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return &NotFoundError{Entity: "observation", ID: id}
		}
		return fmt.Errorf("failed to delete observation: %w", err)
	}
	return nil
}

// ownerFor resolves whose record is being created. Only a teacher may
// record on behalf of someone else.
func ownerFor(actor models.Actor, requested string) (string, error) {
	if requested == "" || requested == actor.UserID {
		return actor.UserID, nil
	}
	if !actor.IsTeacher() {
		return "", ErrForbidden
	}
	return requested, nil
}
