package controllers

import (
	"net/http"

	"craftedbyher/middleware"
	"craftedbyher/models"

	"github.com/gin-gonic/gin"
)

// recipient returns the (userId, role) inbox the caller may read. Every account can
// also read its buyer inbox with ?role=buyer.
func recipient(c *gin.Context) (string, string, bool) {
	if m, ok := middleware.CurrentManager(c); ok {
		return m.ManagerID, models.RoleHubManager, true
	}
	u := currentUser(c)
	role := c.DefaultQuery("role", u.Role)
	if role != u.Role && role != models.RoleBuyer {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: cannot read " + role + " notifications"})
		return "", "", false
	}
	return u.UID, role, true
}

func (h *Handler) GetNotifications(c *gin.Context) {
	uid, role, ok := recipient(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.Inbox.List(ctx, models.NotificationQuery{
		UserID:     uid,
		UserRole:   role,
		UnreadOnly: c.Query("unreadOnly") == "true",
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", result)
}

func (h *Handler) GetUnreadCount(c *gin.Context) {
	uid, role, ok := recipient(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	n, err := h.Inbox.UnreadCount(ctx, uid, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": n})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	uid, role, ok := recipient(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Inbox.MarkRead(ctx, c.Param("id"), uid, role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	uid, role, ok := recipient(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	n, err := h.Inbox.MarkAllRead(ctx, uid, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "modified": n})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	uid, role, ok := recipient(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Inbox.Delete(ctx, c.Param("id"), uid, role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
