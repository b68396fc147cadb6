package models

import (
	"gorm.io/gorm"
)

// Studio is a bookable venue. Each studio is owned by exactly one user
// with the studio role.
type Studio struct {
	gorm.Model
	OwnerID     uint   `gorm:"unique;not null"`
	Name        string `gorm:"not null"`
	Address     string `gorm:"not null"`
	Capacity    int    `gorm:"not null"`
	HourlyPrice int    `gorm:"not null"` // smallest currency unit
}
