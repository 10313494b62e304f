package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/collabsphere/collabsphere/internal/services"
	"github.com/collabsphere/collabsphere/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateProjectRequest struct {
	Title          string  `json:"title" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	RequiredPeople int     `json:"required_people" binding:"required,min=1"`
	Deadline       string  `json:"deadline"`
	Amount         float64 `json:"amount" binding:"min=0"`
}

type FeedbackRequest struct {
	Message string `json:"message" binding:"required"`
}

// parseDeadline accepts RFC 3339 timestamps or a bare date, which means the
// end of that day in UTC.
func parseDeadline(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, &services.Error{Kind: services.KindValidation, Message: "deadline must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"}
	}
	end := day.Add(24*time.Hour - time.Second)
	return &end, nil
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	var body CreateProjectRequest
	if !h.bindJSON(ctx, &body) {
		return
	}

	deadline, err := parseDeadline(body.Deadline)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	project, err := h.Workflow.CreateProject(ctx.Request.Context(), actor, services.CreateProjectInput{
		Title:          body.Title,
		Description:    body.Description,
		RequiredPeople: body.RequiredPeople,
		Deadline:       deadline,
		Amount:         body.Amount,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toProjectResponse(*project))
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	projects, err := h.Workflow.ListPublicProjects(ctx.Request.Context())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toProjectResponses(projects))
}

// GetProject works for anonymous visitors; a signed-in caller also sees the
// status of their own application.
func (h *Handler) GetProject(ctx *gin.Context) {
	projectID, ok := h.uintParam(ctx, "project_id")
	if !ok {
		return
	}

	var caller *services.Actor
	if actor, err := utils.GetActor(ctx); err == nil {
		caller = &actor
	}

	detail, err := h.Workflow.GetProjectDetail(ctx.Request.Context(), projectID, caller)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toProjectDetailResponse(detail))
}

func (h *Handler) ApplyToProject(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	projectID, ok := h.uintParam(ctx, "project_id")
	if !ok {
		return
	}

	if err := h.Workflow.Apply(ctx.Request.Context(), projectID, actor); err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Application submitted"})
}

func (h *Handler) CloseProject(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	projectID, ok := h.uintParam(ctx, "project_id")
	if !ok {
		return
	}

	if err := h.Workflow.CloseProject(ctx.Request.Context(), projectID, actor); err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Applications closed"})
}

func (h *Handler) AddFeedback(ctx *gin.Context) {
	author, err := utils.GetCurrentUser(ctx)
	if err != nil {
		h.respondError(ctx, &services.Error{Kind: services.KindUnauthorized, Message: "User not authenticated"})
		return
	}
	actor := services.Actor{ID: author.ID, IsAdmin: author.IsAdmin}

	projectID, ok := h.uintParam(ctx, "project_id")
	if !ok {
		return
	}

	var body FeedbackRequest
	if !h.bindJSON(ctx, &body) {
		return
	}

	feedback, err := h.Workflow.AddFeedback(ctx.Request.Context(), projectID, actor, services.FeedbackInput{Message: body.Message})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, FeedbackResponse{
		ID:        feedback.ID,
		Message:   feedback.Message,
		Author:    OwnerResponse{ID: actor.ID, Name: author.Name},
		CreatedAt: feedback.CreatedAt,
	})
}
