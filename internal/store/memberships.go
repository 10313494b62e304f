package store

import (
	"context"

	"github.com/collabsphere/collabsphere/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipStore struct {
	DB *gorm.DB
}

func NewMembershipStore(db *gorm.DB) *MembershipStore {
	return &MembershipStore{DB: db}
}

// Upsert records the user as a selected member. An existing row is left as is
// and reported with created=false.
func (s *MembershipStore) Upsert(ctx context.Context, projectID, userID uint) (bool, error) {
	membership := models.ProjectMembership{
		ProjectID: projectID,
		UserID:    userID,
		Status:    models.MembershipSelected,
	}
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&membership)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *MembershipStore) ListForProject(ctx context.Context, projectID uint) ([]models.ProjectMembership, error) {
	var members []models.ProjectMembership
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}
