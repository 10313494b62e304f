package services

import (
	"context"
	"strings"

	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/store"
)

type FeedbackInput struct {
	Message string `validate:"required,max=2000"`
}

func (w *Workflow) AddFeedback(ctx context.Context, projectID uint, actor Actor, in FeedbackInput) (*models.Feedback, error) {
	in.Message = strings.TrimSpace(in.Message)
	if err := w.validateInput(in); err != nil {
		return nil, err
	}

	if _, err := store.NewProjectStore(w.db).Get(ctx, projectID); err != nil {
		return nil, lookupError(err, "project not found")
	}

	feedback := models.Feedback{ProjectID: projectID, UserID: actor.ID, Message: in.Message}
	if err := store.NewFeedbackStore(w.db).Create(ctx, &feedback); err != nil {
		return nil, storageError("create feedback", err)
	}
	return &feedback, nil
}
