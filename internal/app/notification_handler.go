package app

import (
	"net/http"

	"revhub/internal/middleware"
	"revhub/internal/service"
	"revhub/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	limit, offset := pagination(c)

	notifications, err := h.notifications.List(userID.(string), limit, offset)
	if err != nil {
		util.Error(c, err)
		return
	}

	unread, err := h.notifications.UnreadCount(userID.(string))
	if err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "notifications retrieved", gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkAsRead handles PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	if err := h.notifications.MarkAsRead(c.Param("id"), userID.(string)); err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "notification marked as read", nil)
}

// MarkAllAsRead handles PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		util.Unauthorized(c, "user not authenticated")
		return
	}

	if err := h.notifications.MarkAllAsRead(userID.(string)); err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "all notifications marked as read", nil)
}
