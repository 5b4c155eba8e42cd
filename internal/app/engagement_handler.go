package app

import (
	"net/http"

	"revhub/internal/middleware"
	"revhub/internal/model"
	"revhub/internal/service"
	"revhub/internal/util"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagement service.EngagementService
	kinds      map[string]model.EngagementKind
}

func NewEngagementHandler(engagement service.EngagementService, kinds map[string]model.EngagementKind) *EngagementHandler {
	return &EngagementHandler{engagement: engagement, kinds: kinds}
}

func (h *EngagementHandler) resolveKind(c *gin.Context, contentType string) (model.EngagementKind, bool) {
	area := c.Param("area")
	kind, ok := h.kinds[area+"_"+contentType]
	if !ok {
		util.BadRequest(c, "unknown content area")
		return model.EngagementKind{}, false
	}
	return kind, true
}

// Like handles liking a target of the given content type
// POST /api/v1/:area/<type>s/:id/like
func (h *EngagementHandler) Like(contentType string) gin.HandlerFunc {
	return h.LikeByParam(contentType, "id")
}

// Unlike handles removing a like from a target
// DELETE /api/v1/:area/<type>s/:id/like
func (h *EngagementHandler) Unlike(contentType string) gin.HandlerFunc {
	return h.UnlikeByParam(contentType, "id")
}

// LikeByParam is Like with a custom route parameter carrying the target
// id; the question routes use :qid to nest the answer routes beneath.
func (h *EngagementHandler) LikeByParam(contentType, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(middleware.UserIDKey)
		if !exists {
			util.Unauthorized(c, "user not authenticated")
			return
		}

		kind, ok := h.resolveKind(c, contentType)
		if !ok {
			return
		}

		targetID := c.Param(param)
		if targetID == "" {
			util.BadRequest(c, "target id is required")
			return
		}

		rec, err := h.engagement.Like(kind, userID.(string), targetID)
		if err != nil {
			util.Error(c, err)
			return
		}

		util.SuccessResponse(c, http.StatusOK, "liked successfully", gin.H{"like": rec})
	}
}

// UnlikeByParam is Unlike with a custom route parameter.
func (h *EngagementHandler) UnlikeByParam(contentType, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(middleware.UserIDKey)
		if !exists {
			util.Unauthorized(c, "user not authenticated")
			return
		}

		kind, ok := h.resolveKind(c, contentType)
		if !ok {
			return
		}

		targetID := c.Param(param)
		if targetID == "" {
			util.BadRequest(c, "target id is required")
			return
		}

		if err := h.engagement.Unlike(kind, userID.(string), targetID); err != nil {
			util.Error(c, err)
			return
		}

		util.SuccessResponse(c, http.StatusOK, "unliked successfully", nil)
	}
}
