package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whoamaiii/kreativium/backend/internal/apierror"
	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/service"
)

// InsightsHandler handles the analysis endpoints
type InsightsHandler struct {
	insightsService service.InsightsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// filtersOrAbort parses query filters, writing a validation problem on failure
func filtersOrAbort(c *gin.Context) (models.CorrelationFilters, bool) {
	filters, fieldErrors := parseFilters(c)
	if len(fieldErrors) > 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), fieldErrors))
		return filters, false
	}
	return filters, true
}

// GetCorrelations handles GET /api/v1/correlations
func (h *InsightsHandler) GetCorrelations(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	filters, ok := filtersOrAbort(c)
	if !ok {
		return
	}

	correlations, err := h.insightsService.Correlations(c.Request.Context(), actor, filters)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"correlations": correlations,
		"count":        len(correlations),
	})
}

// GetAnalysis handles GET /api/v1/analysis
func (h *InsightsHandler) GetAnalysis(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	filters, ok := filtersOrAbort(c)
	if !ok {
		return
	}

	analysis, err := h.insightsService.Analyze(c.Request.Context(), actor, filters)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// GenerateRecommendations handles POST /api/v1/recommendations/generate.
// Filters come from the query string, as for GET /analysis.
func (h *InsightsHandler) GenerateRecommendations(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	filters, ok := filtersOrAbort(c)
	if !ok {
		return
	}

	recs, err := h.insightsService.Recommend(c.Request.Context(), actor, filters)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recommendations": recs})
}

// GetRecommendations handles GET /api/v1/recommendations
func (h *InsightsHandler) GetRecommendations(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	recs, err := h.insightsService.ListRecommendations(c.Request.Context(), actor, c.DefaultQuery("user_id", actor.UserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// UpdateRecommendation handles PATCH /api/v1/recommendations/:id
func (h *InsightsHandler) UpdateRecommendation(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.UpdateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	rec, err := h.insightsService.MarkRecommendation(c.Request.Context(), actor, id, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// GetPatterns handles GET /api/v1/patterns
func (h *InsightsHandler) GetPatterns(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	dateRange, fieldErrors := parseDateRange(c)
	if len(fieldErrors) > 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), fieldErrors))
		return
	}

	patterns, err := h.insightsService.Patterns(c.Request.Context(), actor, c.Query("user_id"), dateRange)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patterns)
}
