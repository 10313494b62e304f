package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Bio       string `json:"bio" binding:"max=2000"`
	Portfolio string `json:"portfolio" binding:"omitempty,url"`
	Whatsapp  string `json:"whatsapp" binding:"max=32"`
	Gender    string `json:"gender" binding:"max=16"`
	Age       *int   `json:"age" binding:"omitempty,min=0,max=150"`
}

func (h *Handler) GetProfile(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	user, err := h.Users.Get(ctx.Request.Context(), actor.ID)
	if err != nil {
		h.respondError(ctx, internalError("load user", err))
		return
	}
	ctx.JSON(http.StatusOK, toProfileResponse(*user))
}

func (h *Handler) UpdateProfile(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	var body UpdateProfileRequest
	if !h.bindJSON(ctx, &body) {
		return
	}

	updates := map[string]interface{}{
		"name":      strings.TrimSpace(body.Name),
		"bio":       strings.TrimSpace(body.Bio),
		"portfolio": strings.TrimSpace(body.Portfolio),
		"whatsapp":  strings.TrimSpace(body.Whatsapp),
		"gender":    strings.TrimSpace(body.Gender),
		"age":       body.Age,
	}
	if err := h.Users.Update(ctx.Request.Context(), actor.ID, updates); err != nil {
		h.respondError(ctx, internalError("update user", err))
		return
	}

	user, err := h.Users.Get(ctx.Request.Context(), actor.ID)
	if err != nil {
		h.respondError(ctx, internalError("load user", err))
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    toProfileResponse(*user),
	})
}

func (h *Handler) MyProjects(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	projects, err := h.Workflow.ListOwnedProjects(ctx.Request.Context(), actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toProjectResponses(projects))
}

func (h *Handler) MyApplications(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	apps, err := h.Workflow.ListMyApplications(ctx.Request.Context(), actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	out := make([]MyApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, MyApplicationResponse{
			ProjectID:    a.ProjectID,
			ProjectTitle: a.Project.Title,
			Status:       string(a.Status),
			AppliedAt:    a.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, out)
}
