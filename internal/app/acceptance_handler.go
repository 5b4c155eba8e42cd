package app

import (
	"net/http"

	"revhub/internal/middleware"
	"revhub/internal/model"
	"revhub/internal/service"
	"revhub/internal/util"

	"github.com/gin-gonic/gin"
)

type AcceptanceHandler struct {
	acceptance service.AcceptanceService
	kinds      map[string]model.QuestionKind
}

func NewAcceptanceHandler(acceptance service.AcceptanceService, kinds map[string]model.QuestionKind) *AcceptanceHandler {
	return &AcceptanceHandler{acceptance: acceptance, kinds: kinds}
}

func (h *AcceptanceHandler) resolve(c *gin.Context) (model.QuestionKind, string, string, string, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return model.QuestionKind{}, "", "", "", false
	}

	kind, ok := h.kinds[c.Param("area")]
	if !ok {
		util.BadRequest(c, "unknown content area")
		return model.QuestionKind{}, "", "", "", false
	}

	questionID := c.Param("qid")
	answerID := c.Param("aid")
	if questionID == "" || answerID == "" {
		util.BadRequest(c, "question and answer ids are required")
		return model.QuestionKind{}, "", "", "", false
	}

	return kind, questionID, answerID, userID.(string), true
}

// Accept marks an answer as the question's accepted one
// PUT /api/v1/:area/questions/:qid/answers/:aid/accept
func (h *AcceptanceHandler) Accept(c *gin.Context) {
	kind, questionID, answerID, userID, ok := h.resolve(c)
	if !ok {
		return
	}

	if err := h.acceptance.Accept(kind, questionID, answerID, userID); err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "answer accepted", nil)
}

// Reject clears the question's accepted answer
// PUT /api/v1/:area/questions/:qid/answers/:aid/reject
func (h *AcceptanceHandler) Reject(c *gin.Context) {
	kind, questionID, answerID, userID, ok := h.resolve(c)
	if !ok {
		return
	}

	if err := h.acceptance.Reject(kind, questionID, answerID, userID); err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "acceptance removed", nil)
}
