package app

import (
	"net/http"

	"revhub/internal/apperr"
	"revhub/internal/middleware"
	"revhub/internal/repository"
	"revhub/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler covers the profile surface: avatar upload and the points
// balances the engagement flows accumulate.
type UserHandler struct {
	userRepo   repository.UserRepository
	cloudinary *util.CloudinaryClient
}

func NewUserHandler(userRepo repository.UserRepository, cloudinary *util.CloudinaryClient) *UserHandler {
	return &UserHandler{userRepo: userRepo, cloudinary: cloudinary}
}

const maxAvatarSize = 5 << 20 // 5 MB

// UploadAvatar handles PUT /api/v1/users/me/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	if h.cloudinary == nil {
		util.Error(c, apperr.New(apperr.KindInternal, "UPLOADS_DISABLED", "image uploads are not configured"))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		util.BadRequest(c, "avatar file is required")
		return
	}
	if fileHeader.Size > maxAvatarSize {
		util.BadRequest(c, "avatar must be 5MB or smaller")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.Error(c, apperr.Internal("avatar open", err))
		return
	}
	defer file.Close()

	url, err := h.cloudinary.UploadFromReader(file, fileHeader.Filename)
	if err != nil {
		util.Error(c, apperr.Internal("avatar upload", err))
		return
	}

	if err := h.userRepo.UpdatePicture(userID.(string), url); err != nil {
		util.Error(c, apperr.Internal("avatar persist", err))
		return
	}

	util.SuccessResponse(c, http.StatusOK, "avatar updated", gin.H{"picture": url})
}

// Points handles GET /api/v1/users/me/points
func (h *UserHandler) Points(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	user, err := h.userRepo.FindByID(userID.(string))
	if err != nil {
		util.Error(c, apperr.Internal("points lookup", err))
		return
	}
	if user == nil {
		util.Error(c, apperr.ErrUserNotFound)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "points retrieved", gin.H{
		"points":             user.Points,
		"competition_points": user.CompetitionPoints,
	})
}

// Profile handles GET /api/v1/users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.userRepo.FindByID(c.Param("id"))
	if err != nil {
		util.Error(c, apperr.Internal("profile lookup", err))
		return
	}
	if user == nil {
		util.Error(c, apperr.ErrUserNotFound)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "profile retrieved", gin.H{
		"user": gin.H{
			"id":      user.ID,
			"name":    user.Name,
			"picture": user.Picture,
			"points":  user.Points,
		},
	})
}
