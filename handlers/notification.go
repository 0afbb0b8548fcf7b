package handlers

import (
	"net/http"

	"flynext/models"
	"flynext/services/notification"
	"flynext/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Notifications notification.NotificationService
}

// BadgeHandler handles GET /api/user/notifications/badge.
func (h *NotificationHandler) BadgeHandler(c *gin.Context) {
	count, hit, err := h.Notifications.UnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	cacheState := "MISS"
	if hit {
		cacheState = "HIT"
	}
	c.Header("Cache-Control", "public, max-age=30, stale-while-revalidate=60")
	c.Header("X-Cache", cacheState)
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// ReadHandler handles POST /api/user/notifications/read.
func (h *NotificationHandler) ReadHandler(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	var req models.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NotificationIDs == nil {
		utils.JSONError(c, http.StatusBadRequest, "notificationIds must be provided as an array", "")
		return
	}
	updated, err := h.Notifications.MarkRead(c.Request.Context(), currentUserID(c), req.NotificationIDs)
	if err != nil {
		fail(c, err)
		return
	}
	if updated == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No unread notifications to mark as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read", "updatedCount": updated})
}

// ReceiveHandler handles GET /api/user/notifications/recieve.
func (h *NotificationHandler) ReceiveHandler(c *gin.Context) {
	list, err := h.Notifications.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
