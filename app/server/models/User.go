package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// Provisioned on first successful sign-in, keyed by email
	Email       string `gorm:"column:email;uniqueIndex" json:"email"` // lowercase, institutional domain only
	Name        string `gorm:"column:user_name" json:"user_name"`
	PhoneNumber string `gorm:"column:phone_number" json:"phone_number"`
	Image       string `gorm:"column:image" json:"image"`
	Gender      string `gorm:"column:gender" json:"gender"`
}
