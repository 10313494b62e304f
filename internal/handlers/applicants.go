package handlers

import (
	"context"
	"net/http"

	"github.com/collabsphere/collabsphere/internal/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListApplicants(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	projectID, ok := h.uintParam(ctx, "project_id")
	if !ok {
		return
	}

	apps, err := h.Workflow.ListApplicants(ctx.Request.Context(), projectID, actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toApplicantResponses(apps))
}

type applicantDecision func(ctx context.Context, projectID, applicantID uint, actor services.Actor) error

func (h *Handler) decideApplicant(decide applicantDecision, message string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := h.actor(ctx)
		if !ok {
			return
		}
		projectID, ok := h.uintParam(ctx, "project_id")
		if !ok {
			return
		}
		applicantID, ok := h.uintParam(ctx, "user_id")
		if !ok {
			return
		}

		if err := decide(ctx.Request.Context(), projectID, applicantID, actor); err != nil {
			h.respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": message})
	}
}

func (h *Handler) AcceptApplicant() gin.HandlerFunc {
	return h.decideApplicant(h.Workflow.AcceptApplicant, "Applicant accepted")
}

func (h *Handler) RejectApplicant() gin.HandlerFunc {
	return h.decideApplicant(h.Workflow.RejectApplicant, "Applicant rejected")
}
