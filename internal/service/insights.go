package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

var tracer = otel.Tracer("github.com/whoamaiii/kreativium/backend/internal/service")

type insightsService struct {
	builder  CorrelationBuilder
	obsRepo  repository.ObservationRepository
	recRepo  repository.RecommendationRepository
	location *time.Location
	now      func() time.Time
}

// NewInsightsService creates the analysis facade. Hourly patterns are
// bucketed in loc; nil means time.Local. Nothing is cached between calls.
func NewInsightsService(
	builder CorrelationBuilder,
	obsRepo repository.ObservationRepository,
	recRepo repository.RecommendationRepository,
	loc *time.Location,
) InsightsService {
	if loc == nil {
		loc = time.Local
	}
	return &insightsService{
		builder:  builder,
		obsRepo:  obsRepo,
		recRepo:  recRepo,
		location: loc,
		now:      time.Now,
	}
}

// scope restricts filters to what actor may read. Children only ever see
// their own data; a teacher with no user filter sees everyone.
func scope(actor models.Actor, filters models.CorrelationFilters) (models.CorrelationFilters, error) {
	if filters.UserID == "" {
		if !actor.IsTeacher() {
			filters.UserID = actor.UserID
		}
		return filters, nil
	}
	if !actor.CanAccess(filters.UserID) {
		return filters, ErrForbidden
	}
	return filters, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *insightsService) Correlations(ctx context.Context, actor models.Actor, filters models.CorrelationFilters) (_ []models.Correlation, err error) {
	ctx, span := tracer.Start(ctx, "insights.Correlations")
	defer func() { endSpan(span, err) }()

	filters, err = scope(actor, filters)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("filter.user_id", filters.UserID))

	return s.builder.Build(ctx, filters)
}

func (s *insightsService) Analyze(ctx context.Context, actor models.Actor, filters models.CorrelationFilters) (_ *models.AggregateAnalysis, err error) {
	ctx, span := tracer.Start(ctx, "insights.Analyze")
	defer func() { endSpan(span, err) }()

	correlations, err := s.Correlations(ctx, actor, filters)
	if err != nil {
		return nil, err
	}

	analysis := Analyze(correlations)
	span.SetAttributes(
		attribute.Int("correlations", analysis.TotalCorrelations),
		attribute.Int("estimated", analysis.EstimatedCount),
		attribute.Int("shifts", len(analysis.EmotionalShifts)),
	)
	return &analysis, nil
}

// Recommend runs the full pipeline for one user and appends the result to
// the recommendation store.
func (s *insightsService) Recommend(ctx context.Context, actor models.Actor, filters models.CorrelationFilters) (_ []models.Recommendation, err error) {
	ctx, span := tracer.Start(ctx, "insights.Recommend")
	defer func() { endSpan(span, err) }()

	if filters.UserID == "" {
		filters.UserID = actor.UserID
	}

	analysis, err := s.Analyze(ctx, actor, filters)
	if err != nil {
		return nil, err
	}

	recs := GenerateRecommendations(filters.UserID, *analysis, s.now())
	span.SetAttributes(attribute.Int("recommendations", len(recs)))
	if len(recs) == 0 {
		return recs, nil
	}

	if err := s.recRepo.BulkCreate(ctx, recs); err != nil {
		return nil, fmt.Errorf("failed to store recommendations: %w", err)
	}

	logger.Ctx(ctx).Info("recommendations generated",
		logger.String("target_user_id", filters.UserID),
		logger.Int("count", len(recs)),
	)
	return recs, nil
}

func (s *insightsService) ListRecommendations(ctx context.Context, actor models.Actor, userID string) ([]models.Recommendation, error) {
	if !actor.CanAccess(userID) {
		return nil, ErrForbidden
	}
	recs, err := s.recRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}

// MarkRecommendation records that a recommendation was acted upon. A nil
// Applied keeps the stored flag; an absent Outcome keeps the stored outcome
// and an explicit null clears it.
func (s *insightsService) MarkRecommendation(ctx context.Context, actor models.Actor, id string, req *models.UpdateRecommendationRequest) (*models.Recommendation, error) {
	rec, err := s.recRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "recommendation", id)
	}
	if !actor.CanAccess(rec.UserID) {
		return nil, ErrForbidden
	}

	applied := rec.Applied
	if req.Applied != nil {
		applied = *req.Applied
	}
	outcome := rec.Outcome
	if req.Outcome.Set {
		outcome = req.Outcome.ToPtr()
	}

	updated, err := s.recRepo.UpdateOutcome(ctx, id, applied, outcome)
	if err != nil {
		return nil, notFoundOr(err, "recommendation", id)
	}
	return updated, nil
}

func (s *insightsService) Patterns(ctx context.Context, actor models.Actor, userID string, dateRange *models.DateRange) (_ *models.TemporalPatterns, err error) {
	ctx, span := tracer.Start(ctx, "insights.Patterns")
	defer func() { endSpan(span, err) }()

	if userID == "" {
		userID = actor.UserID
	}
	if !actor.CanAccess(userID) {
		return nil, ErrForbidden
	}

	observations, err := s.obsRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load observations: %w", err)
	}

	patterns := AnalyzePatterns(filterObservations(observations, dateRange), s.location)
	span.SetAttributes(attribute.Int("observations", patterns.Total))
	return &patterns, nil
}
