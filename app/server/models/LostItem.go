package models

import (
	"time"

	"gorm.io/gorm"
)

type LostItem struct {
	gorm.Model

	Name        string    `gorm:"column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Date        time.Time `gorm:"column:date" json:"date"` // when the item was lost
	Location    string    `gorm:"column:location" json:"location"`
	PhoneNumber string    `gorm:"column:phone_number" json:"phone_number"`
	Image       string    `gorm:"column:image" json:"image"`

	OwnerID uint  `gorm:"column:owner_id;index" json:"ownerId"`
	Owner   *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
