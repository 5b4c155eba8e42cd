package app

import (
	"net/http"
	"time"

	"revhub/internal/middleware"
	"revhub/internal/service"
	"revhub/internal/util"

	"github.com/gin-gonic/gin"
)

// AIHandler exposes the recommendation feed and the trainer's sync
// callback. The callback route sits behind the trainer API key, not a
// user token.
type AIHandler struct {
	ai   service.AIService
	sync service.SyncService
}

func NewAIHandler(ai service.AIService, sync service.SyncService) *AIHandler {
	return &AIHandler{ai: ai, sync: sync}
}

// Recommendations handles GET /api/v1/recommendations
func (h *AIHandler) Recommendations(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	set, err := h.ai.Recommend(c.Request.Context(), userID.(string))
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "recommendations retrieved", gin.H{"recommendations": set})
}

type setLastQueryRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

// SetLastQuery handles PUT /api/v1/ai/lastquery
func (h *AIHandler) SetLastQuery(c *gin.Context) {
	var req setLastQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "date is required in RFC 3339 format")
		return
	}

	if err := h.sync.SetLastQuery(req.Date); err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "last query checkpoint updated", gin.H{
		"date": req.Date.Format(time.RFC3339),
	})
}
