package controller

import (
	"campus_voice_backend/internal/service"
	"campus_voice_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param unread query bool false "Only unread"
// @Success 200 {object} util.Response
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	items, page, err := c.NotificationService.List(ctx.Request.Context(), actor,
		util.ParseBool(ctx.Query("unread")), queryInt(ctx, "page"), queryInt(ctx, "limit"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	unread, err := c.NotificationService.UnreadCount(ctx.Request.Context(), actor)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"notifications": items,
		"unreadCount":   unread,
		"pagination":    page,
	})
}

// @Summary Mark a notification as read
// @Tags Notifications
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.NotificationService.MarkRead(ctx.Request.Context(), actor, id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Notification marked as read", nil)
}

// @Summary Mark all notifications as read
// @Tags Notifications
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	n, err := c.NotificationService.MarkAllRead(ctx.Request.Context(), actor)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "All notifications marked as read", gin.H{"updated": n})
}
