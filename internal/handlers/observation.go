package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/service"
)

type ObservationHandler struct {
	observationService service.ObservationService
}

// NewObservationHandler creates a new observation handler
func NewObservationHandler(observationService service.ObservationService) *ObservationHandler {
	return &ObservationHandler{observationService: observationService}
}

// CreateObservation handles POST /api/v1/observations
func (h *ObservationHandler) CreateObservation(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req models.CreateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	obs, err := h.observationService.Record(c.Request.Context(), actor, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, obs)
}

// GetObservations handles GET /api/v1/observations
func (h *ObservationHandler) GetObservations(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	userID := c.DefaultQuery("user_id", actor.UserID)
	observations, err := h.observationService.List(c.Request.Context(), actor, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, observations)
}

// DeleteObservation handles DELETE /api/v1/observations/:id
func (h *ObservationHandler) DeleteObservation(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.observationService.Delete(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
