package models

import (
	"time"

	"gorm.io/gorm"
)

type DonorRecord struct {
	gorm.Model

	UserID      uint       `gorm:"column:user_id;uniqueIndex" json:"userId"` // one record per user, reactivated instead of recreated
	BloodGroup  string     `gorm:"column:blood_group" json:"blood_group"`
	Location    string     `gorm:"column:location" json:"location"`
	LastDonated *time.Time `gorm:"column:last_donated" json:"last_donated"`
	IsActive    bool       `gorm:"column:is_active" json:"isActive"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
