package models

import "gorm.io/gorm"

// Application is a user's request to join a project. The composite unique
// index is what keeps concurrent applies down to a single row.
type Application struct {
	gorm.Model

	ProjectID uint              `gorm:"not null;uniqueIndex:idx_application_project_user"`
	UserID    uint              `gorm:"not null;uniqueIndex:idx_application_project_user;index"`
	Status    ApplicationStatus `gorm:"type:varchar(16);not null;default:'applied'"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
