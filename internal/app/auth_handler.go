package app

import (
	"net/http"

	"revhub/internal/middleware"
	"revhub/internal/service"
	"revhub/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, tokens, err := h.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "registered successfully", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, tokens, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "logged in successfully", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	user, err := h.auth.Me(userID.(string))
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "profile retrieved", gin.H{"user": user})
}
