package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	OwnerID        uint          `gorm:"not null;index"`
	Title          string        `gorm:"not null"`
	Description    string        `gorm:"not null"`
	RequiredPeople int           `gorm:"not null"`
	Deadline       *time.Time
	Amount         float64       `gorm:"type:numeric(12,2);not null;default:0"`
	Status         ProjectStatus `gorm:"type:varchar(16);not null;default:'pending';index"`

	// Relationships
	Owner       User                `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Memberships []ProjectMembership `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// DeadlinePassed reports whether the project has a deadline strictly before now.
func (p Project) DeadlinePassed(now time.Time) bool {
	return p.Deadline != nil && p.Deadline.Before(now)
}
