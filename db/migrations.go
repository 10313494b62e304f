package db

import (
	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

var userProfileFields = []string{"Gender", "Age"}

func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "20251017_create_users_and_projects",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Project{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("projects", "users")
			},
		},
		{
			ID: "20251017_create_applications_and_memberships",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Application{}, &models.ProjectMembership{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("project_memberships", "applications")
			},
		},
		{
			ID: "20251017_create_feedbacks_and_notifications",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Feedback{}, &models.Notification{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("notifications", "feedbacks")
			},
		},
		{
			ID: "20251018_add_user_gender_and_age",
			Migrate: func(tx *gorm.DB) error {
				for _, field := range userProfileFields {
					if tx.Migrator().HasColumn(&models.User{}, field) {
						continue
					}
					if err := tx.Migrator().AddColumn(&models.User{}, field); err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				for _, field := range userProfileFields {
					if err := tx.Migrator().DropColumn(&models.User{}, field); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
