package store

import (
	"context"

	"github.com/collabsphere/collabsphere/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectStore struct {
	DB *gorm.DB
}

func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{DB: db}
}

func (s *ProjectStore) Create(ctx context.Context, project *models.Project) error {
	return s.DB.WithContext(ctx).Create(project).Error
}

func (s *ProjectStore) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := s.DB.WithContext(ctx).Preload("Owner").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetForUpdate reads the project with a row lock. Only meaningful inside a
// transaction; sqlite ignores the locking clause.
func (s *ProjectStore) GetForUpdate(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := s.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// CompareAndSetStatus moves the project from one status to another only if it
// is still in the expected state. It reports whether the row changed.
func (s *ProjectStore) CompareAndSetStatus(ctx context.Context, id uint, from, to models.ProjectStatus) (bool, error) {
	if err := models.ValidateProjectTransition(from, to); err != nil {
		return false, err
	}
	res := s.DB.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ListByStatus returns projects in any of the given states with their owner
// and confirmed members, newest first.
func (s *ProjectStore) ListByStatus(ctx context.Context, statuses ...models.ProjectStatus) ([]models.Project, error) {
	var projects []models.Project
	err := newestFirst(s.DB.WithContext(ctx)).
		Preload("Owner").
		Preload("Memberships", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Memberships.User").
		Where("status IN ?", statuses).
		Find(&projects).Error
	return projects, err
}

func (s *ProjectStore) ListByOwner(ctx context.Context, ownerID uint) ([]models.Project, error) {
	var projects []models.Project
	err := newestFirst(s.DB.WithContext(ctx)).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Find(&projects).Error
	return projects, err
}

func (s *ProjectStore) CountByStatus(ctx context.Context, status models.ProjectStatus) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Project{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
