package service

import (
	"context"
	"fmt"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

type linkService struct {
	obsRepo  repository.ObservationRepository
	actRepo  repository.ActivityResultRepository
	linkRepo repository.LinkRepository
	now      func() time.Time
}

// NewLinkService creates a new link service
func NewLinkService(
	obsRepo repository.ObservationRepository,
	actRepo repository.ActivityResultRepository,
	linkRepo repository.LinkRepository,
) LinkService {
	return &linkService{
		obsRepo:  obsRepo,
		actRepo:  actRepo,
		linkRepo: linkRepo,
		now:      time.Now,
	}
}

// CreateLink associates an observation with an activity result. Both must
// exist and belong to the same user.
//
// The existence checks and the append are separate store calls, so a
// concurrent delete can still leave the new link dangling and two
// concurrent calls can both append.
func (s *linkService) CreateLink(ctx context.Context, observationID, activityID string, contextType models.ContextType) (*models.EmotionActivityLink, error) {
	return s.createLink(ctx, nil, observationID, activityID, contextType)
}

// CreateLinkAs is CreateLink on behalf of actor, who must be allowed to
// access the records being linked.
func (s *linkService) CreateLinkAs(ctx context.Context, actor models.Actor, req *models.CreateLinkRequest) (*models.EmotionActivityLink, error) {
	return s.createLink(ctx, &actor, req.EmotionObservationID, req.ActivityResultID, req.ContextType)
}

func (s *linkService) createLink(ctx context.Context, actor *models.Actor, observationID, activityID string, contextType models.ContextType) (*models.EmotionActivityLink, error) {
	if !contextType.Valid() {
		return nil, invalid("context_type", "must be before or after, got %q", contextType)
	}

	obs, err := s.obsRepo.GetByID(ctx, observationID)
	if err != nil {
		return nil, notFoundOr(err, "observation", observationID)
	}

	act, err := s.actRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, notFoundOr(err, "activity result", activityID)
	}

	if actor != nil && (!actor.CanAccess(obs.UserID) || !actor.CanAccess(act.UserID)) {
		return nil, ErrForbidden
	}
	if obs.UserID != act.UserID {
		return nil, &OwnershipMismatchError{ObservationUserID: obs.UserID, ActivityUserID: act.UserID}
	}

	link := &models.EmotionActivityLink{
		ID:                   NewID(),
		EmotionObservationID: obs.ID,
		ActivityResultID:     act.ID,
		ContextType:          contextType,
		Timestamp:            s.now().UTC(),
	}

	created, err := s.linkRepo.Append(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	logger.Ctx(ctx).Debug("link created",
		logger.String("link_id", created.ID),
		logger.String("observation_id", obs.ID),
		logger.String("activity_result_id", act.ID),
		logger.String("context_type", string(contextType)),
	)
	return created, nil
}

// AllLinks returns every link in the store
func (s *linkService) AllLinks(ctx context.Context) ([]models.EmotionActivityLink, error) {
	links, err := s.linkRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

// ListLinks returns the links attached to userID's activity results
func (s *linkService) ListLinks(ctx context.Context, actor models.Actor, userID string) ([]models.EmotionActivityLink, error) {
	if !actor.CanAccess(userID) {
		return nil, ErrForbidden
	}

	activities, err := s.actRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity results: %w", err)
	}
	owned := make(map[string]struct{}, len(activities))
	for _, a := range activities {
		owned[a.ID] = struct{}{}
	}

	links, err := s.AllLinks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.EmotionActivityLink, 0)
	for _, l := range links {
		if _, ok := owned[l.ActivityResultID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}
