package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

type correlationBuilder struct {
	obsRepo  repository.ObservationRepository
	actRepo  repository.ActivityResultRepository
	linkRepo repository.LinkRepository
}

// NewCorrelationBuilder creates a builder that joins links, activity results
// and observations read from the given repositories.
func NewCorrelationBuilder(
	obsRepo repository.ObservationRepository,
	actRepo repository.ActivityResultRepository,
	linkRepo repository.LinkRepository,
) CorrelationBuilder {
	return &correlationBuilder{
		obsRepo:  obsRepo,
		actRepo:  actRepo,
		linkRepo: linkRepo,
	}
}

// Build returns one Correlation per surviving link. Stages run in a fixed
// order, each narrowing the candidate set before the next join:
//
//  1. activity results by user and activity type
//  2. links attached to surviving activities, by context type
//  3. resolve both ends of each link; dangling links are skipped
//  4. observation emotion
//  5. normalized performance range
//  6. activity timestamp within the date range
//
// The result has no duplicate link ids; its order is unspecified.
func (b *correlationBuilder) Build(ctx context.Context, filters models.CorrelationFilters) ([]models.Correlation, error) {
	var (
		activities   []models.ActivityResult
		links        []models.EmotionActivityLink
		observations []models.EmotionObservation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if filters.UserID != "" {
			activities, err = b.actRepo.ListByUserID(gctx, filters.UserID)
		} else {
			activities, err = b.actRepo.List(gctx)
		}
		if err != nil {
			return fmt.Errorf("failed to load activity results: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if links, err = b.linkRepo.List(gctx); err != nil {
			return fmt.Errorf("failed to load links: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if observations, err = b.obsRepo.List(gctx); err != nil {
			return fmt.Errorf("failed to load observations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Stage 1
	activityByID := make(map[string]*models.ActivityResult, len(activities))
	for i := range activities {
		a := &activities[i]
		if filters.UserID != "" && a.UserID != filters.UserID {
			continue
		}
		if filters.ActivityType != nil && a.ActivityType != *filters.ActivityType {
			continue
		}
		activityByID[a.ID] = a
	}

	observationByID := make(map[string]*models.EmotionObservation, len(observations))
	for i := range observations {
		observationByID[observations[i].ID] = &observations[i]
	}

	var dangling, estimated int
	seen := make(map[string]struct{}, len(links))
	out := make([]models.Correlation, 0)

	for _, link := range links {
		// Stage 2
		activity, ok := activityByID[link.ActivityResultID]
		if !ok {
			continue
		}
		if filters.ContextType != nil && link.ContextType != *filters.ContextType {
			continue
		}
		if _, dup := seen[link.ID]; dup {
			continue
		}

		// Stage 3: the activity side resolved above
		obs, ok := observationByID[link.EmotionObservationID]
		if !ok {
			dangling++
			continue
		}

		// Stage 4
		if filters.Emotion != nil && obs.Emotion != *filters.Emotion {
			continue
		}

		// Stage 5
		score := NormalizePerformance(*activity)
		if filters.PerformanceRange != nil && !filters.PerformanceRange.Contains(score.Value) {
			continue
		}

		// Stage 6
		if filters.DateRange != nil && !filters.DateRange.Contains(activity.Timestamp) {
			continue
		}

		seen[link.ID] = struct{}{}
		if score.Estimated {
			estimated++
		}
		out = append(out, models.Correlation{
			LinkID:             link.ID,
			Emotion:            obs.Emotion,
			ActivityType:       activity.ActivityType,
			ActivityResult:     *activity,
			EmotionObservation: *obs,
			ContextType:        link.ContextType,
			PerformanceMetric:  score.Value,
			IsEstimated:        score.Estimated,
		})
	}

	log := logger.Ctx(ctx)
	log.Debug("correlations built",
		logger.Int("activities", len(activityByID)),
		logger.Int("links", len(links)),
		logger.Int("correlations", len(out)),
		logger.Int("dangling_skipped", dangling),
	)
	if estimated > 0 {
		log.Warn("correlations use estimated performance",
			logger.Int("estimated", estimated),
			logger.Int("correlations", len(out)),
		)
	}

	return out, nil
}
