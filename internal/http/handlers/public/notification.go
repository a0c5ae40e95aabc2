package public

import (
	"strconv"

	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

// ListNotifications the caller's inbox, newest first
func (h *Handler) ListNotifications(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, limit, err := handlershared.QueryPage(c)
	if err != nil {
		respondWithMappedError(c, err, notificationErrorRules, "Failed to fetch notifications")
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))
	result, err := h.NotificationService.List(uid, service.NotificationListQuery{
		Page:       page,
		Limit:      limit,
		UnreadOnly: unreadOnly,
	})
	if err != nil {
		respondWithMappedError(c, err, notificationErrorRules, "Failed to fetch notifications")
		return
	}
	response.Success(c, result)
}

// MarkNotificationRead marks one notification read
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	notificationID, ok := parseID(c, "id", "notification")
	if !ok {
		return
	}
	if err := h.NotificationService.MarkRead(uid, notificationID); err != nil {
		respondWithMappedError(c, err, notificationErrorRules, "Failed to update notification")
		return
	}
	response.SuccessWithMsg(c, "Notification marked as read", nil)
}
