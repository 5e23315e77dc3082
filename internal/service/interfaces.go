package service

import (
	"context"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// ObservationService records and manages emotion observations
type ObservationService interface {
	Record(ctx context.Context, actor models.Actor, req *models.CreateObservationRequest) (*models.EmotionObservation, error)
	List(ctx context.Context, actor models.Actor, userID string) ([]models.EmotionObservation, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
}

// ActivityService records and manages activity results
type ActivityService interface {
	Record(ctx context.Context, actor models.Actor, req *models.CreateActivityResultRequest) (*models.ActivityResult, error)
	List(ctx context.Context, actor models.Actor, userID string) ([]models.ActivityResult, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
}

// LinkService creates and reads emotion-activity links. Links are
// append-only: there is no update or delete.
type LinkService interface {
	CreateLink(ctx context.Context, observationID, activityID string, contextType models.ContextType) (*models.EmotionActivityLink, error)
	CreateLinkAs(ctx context.Context, actor models.Actor, req *models.CreateLinkRequest) (*models.EmotionActivityLink, error)
	AllLinks(ctx context.Context) ([]models.EmotionActivityLink, error)
	ListLinks(ctx context.Context, actor models.Actor, userID string) ([]models.EmotionActivityLink, error)
}

// CorrelationBuilder joins links, activity results and observations
type CorrelationBuilder interface {
	Build(ctx context.Context, filters models.CorrelationFilters) ([]models.Correlation, error)
}

// InsightsService runs the analysis pipeline on behalf of an actor
type InsightsService interface {
	Correlations(ctx context.Context, actor models.Actor, filters models.CorrelationFilters) ([]models.Correlation, error)
	Analyze(ctx context.Context, actor models.Actor, filters models.CorrelationFilters) (*models.AggregateAnalysis, error)
	Recommend(ctx context.Context, actor models.Actor, filters models.CorrelationFilters) ([]models.Recommendation, error)
	ListRecommendations(ctx context.Context, actor models.Actor, userID string) ([]models.Recommendation, error)
	MarkRecommendation(ctx context.Context, actor models.Actor, id string, req *models.UpdateRecommendationRequest) (*models.Recommendation, error)
	Patterns(ctx context.Context, actor models.Actor, userID string, dateRange *models.DateRange) (*models.TemporalPatterns, error)
}
