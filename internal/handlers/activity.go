package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new activity result handler
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// CreateActivityResult handles POST /api/v1/activities
func (h *ActivityHandler) CreateActivityResult(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req models.CreateActivityResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.activityService.Record(c.Request.Context(), actor, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetActivityResults handles GET /api/v1/activities
func (h *ActivityHandler) GetActivityResults(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	userID := c.DefaultQuery("user_id", actor.UserID)
	results, err := h.activityService.List(c.Request.Context(), actor, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// DeleteActivityResult handles DELETE /api/v1/activities/:id
func (h *ActivityHandler) DeleteActivityResult(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
