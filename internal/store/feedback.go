package store

import (
	"context"

	"github.com/collabsphere/collabsphere/internal/models"
	"gorm.io/gorm"
)

type FeedbackStore struct {
	DB *gorm.DB
}

func NewFeedbackStore(db *gorm.DB) *FeedbackStore {
	return &FeedbackStore{DB: db}
}

func (s *FeedbackStore) Create(ctx context.Context, f *models.Feedback) error {
	return s.DB.WithContext(ctx).Create(f).Error
}

func (s *FeedbackStore) ListForProject(ctx context.Context, projectID uint) ([]models.Feedback, error) {
	var list []models.Feedback
	err := newestFirst(s.DB.WithContext(ctx)).
		Preload("User").
		Where("project_id = ?", projectID).
		Find(&list).Error
	return list, err
}
