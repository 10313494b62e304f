package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotifyNewProject          NotificationType = "new_project"
	NotifyApprovalSuccess     NotificationType = "approval_success"
	NotifyApprovalRejected    NotificationType = "approval_rejected"
	NotifyApplication         NotificationType = "application"
	NotifyApplicationAccepted NotificationType = "application_accepted"
	NotifyApplicationRejected NotificationType = "application_rejected"
)

type Notification struct {
	gorm.Model

	UserID  uint             `gorm:"not null;index"`
	Type    NotificationType `gorm:"type:varchar(32);not null"`
	Message string           `gorm:"not null"`
	Link    string
	IsRead  bool `gorm:"not null;default:false"`
	Payload datatypes.JSON

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
