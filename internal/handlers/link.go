package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/service"
)

type LinkHandler struct {
	linkService service.LinkService
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(linkService service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

// CreateLink handles POST /api/v1/links. Links are append-only; repeat a
// request with the same Idempotency-Key to avoid a duplicate.
func (h *LinkHandler) CreateLink(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req models.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	link, err := h.linkService.CreateLinkAs(c.Request.Context(), actor, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

// GetLinks handles GET /api/v1/links
func (h *LinkHandler) GetLinks(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	links, err := h.linkService.ListLinks(c.Request.Context(), actor, c.DefaultQuery("user_id", actor.UserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, links)
}
