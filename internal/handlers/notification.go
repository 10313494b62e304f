package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNotifications(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	list, err := h.Workflow.ListNotifications(ctx.Request.Context(), actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	ctx.JSON(http.StatusOK, out)
}

func (h *Handler) UnreadNotificationCount(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	count, err := h.Workflow.UnreadCount(ctx.Request.Context(), actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) MarkNotificationRead(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	notificationID, ok := h.uintParam(ctx, "notification_id")
	if !ok {
		return
	}

	if err := h.Workflow.MarkNotificationRead(ctx.Request.Context(), notificationID, actor); err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
