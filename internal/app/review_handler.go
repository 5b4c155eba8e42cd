package app

import (
	"net/http"
	"strconv"

	"revhub/internal/middleware"
	"revhub/internal/service"
	"revhub/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews service.ReviewService
}

func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	TargetID string `json:"target_id" binding:"required"`
	Pros     string `json:"pros" binding:"required"`
	Cons     string `json:"cons"`
	Rating   int    `json:"rating" binding:"required,rating"`
}

type createCommentRequest struct {
	Content  string  `json:"content" binding:"required,max=2000"`
	ParentID *string `json:"parent_id"`
}

type hideReviewRequest struct {
	Hidden bool `json:"hidden"`
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

// Create handles POST /api/v1/:area/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), c.Param("area"), userID.(string), req.TargetID, req.Pros, req.Cons, req.Rating)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "review created", gin.H{"review": review})
}

// Get handles GET /api/v1/:area/reviews/:id. An authenticated owner can
// read their own hidden review.
func (h *ReviewHandler) Get(c *gin.Context) {
	viewerID := ""
	if v, exists := c.Get(middleware.UserIDKey); exists {
		viewerID = v.(string)
	}

	review, err := h.reviews.Get(c.Param("area"), c.Param("id"), viewerID)
	if err != nil {
		util.Error(c, err)
		return
	}
	util.SuccessResponse(c, http.StatusOK, "review retrieved", gin.H{"review": review})
}

// ListByTarget handles GET /api/v1/:area/targets/:targetId/reviews
func (h *ReviewHandler) ListByTarget(c *gin.Context) {
	limit, offset := pagination(c)

	reviews, total, err := h.reviews.ListByTarget(c.Param("area"), c.Param("targetId"), limit, offset)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "reviews retrieved", gin.H{
		"reviews": reviews,
		"total":   total,
	})
}

// SetHidden handles PUT /api/v1/:area/reviews/:id/visibility
func (h *ReviewHandler) SetHidden(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	var req hideReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := h.reviews.SetHidden(c.Param("area"), c.Param("id"), userID.(string), req.Hidden); err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "review visibility updated", nil)
}

// CreateComment handles POST /api/v1/:area/reviews/:id/comments
func (h *ReviewHandler) CreateComment(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	comment, err := h.reviews.CreateComment(c.Param("area"), userID.(string), c.Param("id"), req.ParentID, req.Content)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "comment created", gin.H{"comment": comment})
}

// ListReplies handles GET /api/v1/:area/comments/:id/replies
func (h *ReviewHandler) ListReplies(c *gin.Context) {
	replies, err := h.reviews.ListReplies(c.Param("area"), c.Param("id"))
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "replies retrieved", gin.H{"replies": replies})
}

// ListComments handles GET /api/v1/:area/reviews/:id/comments
func (h *ReviewHandler) ListComments(c *gin.Context) {
	limit, offset := pagination(c)

	comments, err := h.reviews.ListComments(c.Param("area"), c.Param("id"), limit, offset)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "comments retrieved", gin.H{"comments": comments})
}
