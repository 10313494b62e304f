package models

import "gorm.io/gorm"

const MembershipSelected = "selected"

type ProjectMembership struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;uniqueIndex:idx_membership_project_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_membership_project_user;index"`
	Status    string `gorm:"not null;default:'selected'"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
