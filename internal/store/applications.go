package store

import (
	"context"

	"github.com/collabsphere/collabsphere/internal/models"
	"gorm.io/gorm"
)

type ApplicationStore struct {
	DB *gorm.DB
}

func NewApplicationStore(db *gorm.DB) *ApplicationStore {
	return &ApplicationStore{DB: db}
}

// Create inserts the application; a second row for the same project and user
// fails with ErrDuplicate.
func (s *ApplicationStore) Create(ctx context.Context, app *models.Application) error {
	return translate(s.DB.WithContext(ctx).Create(app).Error)
}

func (s *ApplicationStore) Find(ctx context.Context, projectID, userID uint) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationStore) CompareAndSetStatus(ctx context.Context, projectID, userID uint, from, to models.ApplicationStatus) (bool, error) {
	if err := models.ValidateApplicationTransition(from, to); err != nil {
		return false, err
	}
	res := s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("project_id = ? AND user_id = ? AND status = ?", projectID, userID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *ApplicationStore) ListForProject(ctx context.Context, projectID uint) ([]models.Application, error) {
	var apps []models.Application
	err := newestFirst(s.DB.WithContext(ctx)).
		Preload("User").
		Where("project_id = ?", projectID).
		Find(&apps).Error
	return apps, err
}

func (s *ApplicationStore) ListForUser(ctx context.Context, userID uint) ([]models.Application, error) {
	var apps []models.Application
	err := newestFirst(s.DB.WithContext(ctx)).
		Preload("Project").
		Where("user_id = ?", userID).
		Find(&apps).Error
	return apps, err
}

func (s *ApplicationStore) CountForProject(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Application{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}
