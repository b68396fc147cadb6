package models

import (
	"gorm.io/gorm"
)

// Roles a user account can hold. A studio account owns exactly one Studio row.
const (
	RoleDancer     = "dancer"
	RoleStudio     = "studio"
	RoleInstructor = "instructor"
	RoleReferee    = "referee"
	RoleAdmin      = "admin"
)

// User is a platform account. Dancers battle each other, studio accounts
// approve bookings, referees run scheduled battles.
type User struct {
	gorm.Model
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Nickname     string `gorm:"not null"`
	Role         string `gorm:"not null"`
	DanceStyle   string
	City         string
	Rating       int `gorm:"default:1000"` // ELO-style; seeded, not recomputed here
}

// ValidRole reports whether s is one of the known account roles.
func ValidRole(s string) bool {
	switch s {
	case RoleDancer, RoleStudio, RoleInstructor, RoleReferee, RoleAdmin:
		return true
	}
	return false
}
