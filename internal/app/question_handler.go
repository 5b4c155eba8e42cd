package app

import (
	"net/http"

	"revhub/internal/middleware"
	"revhub/internal/service"
	"revhub/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questions service.QuestionService
}

func NewQuestionHandler(questions service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type createQuestionRequest struct {
	TargetID string `json:"target_id" binding:"required"`
	Content  string `json:"content" binding:"required,max=5000"`
}

type createAnswerRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
}

// Create handles POST /api/v1/:area/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := h.questions.Create(c.Param("area"), userID.(string), req.TargetID, req.Content)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "question created", gin.H{"question": question})
}

// Get handles GET /api/v1/:area/questions/:qid
func (h *QuestionHandler) Get(c *gin.Context) {
	question, err := h.questions.Get(c.Param("area"), c.Param("qid"))
	if err != nil {
		util.Error(c, err)
		return
	}
	util.SuccessResponse(c, http.StatusOK, "question retrieved", gin.H{"question": question})
}

// ListByTarget handles GET /api/v1/:area/targets/:targetId/questions
func (h *QuestionHandler) ListByTarget(c *gin.Context) {
	limit, offset := pagination(c)

	questions, total, err := h.questions.ListByTarget(c.Param("area"), c.Param("targetId"), limit, offset)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "questions retrieved", gin.H{
		"questions": questions,
		"total":     total,
	})
}

// CreateAnswer handles POST /api/v1/:area/questions/:qid/answers
func (h *QuestionHandler) CreateAnswer(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	var req createAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	answer, err := h.questions.CreateAnswer(c.Param("area"), c.Param("qid"), userID.(string), req.Content)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "answer created", gin.H{"answer": answer})
}

// ListAnswers handles GET /api/v1/:area/questions/:qid/answers
func (h *QuestionHandler) ListAnswers(c *gin.Context) {
	limit, offset := pagination(c)

	answers, err := h.questions.ListAnswers(c.Param("area"), c.Param("qid"), limit, offset)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "answers retrieved", gin.H{"answers": answers})
}
