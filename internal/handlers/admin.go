package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListPendingProjects(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	projects, err := h.Workflow.ListPendingProjects(ctx.Request.Context(), actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toProjectResponses(projects))
}

func (h *Handler) ApproveProject(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	projectID, ok := h.uintParam(ctx, "project_id")
	if !ok {
		return
	}

	if err := h.Workflow.ApproveProject(ctx.Request.Context(), projectID, actor); err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Project approved"})
}

func (h *Handler) RejectProject(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	projectID, ok := h.uintParam(ctx, "project_id")
	if !ok {
		return
	}

	if err := h.Workflow.RejectProject(ctx.Request.Context(), projectID, actor); err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Project rejected"})
}

func (h *Handler) PendingProjectCount(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	count, err := h.Workflow.PendingProjectCount(ctx.Request.Context(), actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}
