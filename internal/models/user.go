package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"not null;default:false;index"`
	Bio          string
	Portfolio    string
	Whatsapp     string
	Gender       string `gorm:"type:varchar(16)"`
	Age          *int
}
