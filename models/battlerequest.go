package models

import (
	"time"

	"gorm.io/gorm"
)

// BattleRequest is one challenge between two dancers. Its Status column is
// advanced only through the transitions in the battle package; rejection
// states are terminal rows, never deletions.
type BattleRequest struct {
	gorm.Model
	ShareCode    string `gorm:"unique;not null"`
	InitiatorID  uint   `gorm:"not null;index"`
	ChallengedID uint   `gorm:"not null;index"` // must differ from InitiatorID
	DanceStyle   string
	Description  string
	Status       string `gorm:"not null;index"`

	// Set once a common studio is resolved.
	SelectedStudioID *uint

	// Populated by the studio's approval.
	ScheduledDate   *time.Time
	ScheduledTime   string // "HH:MM", studio-local
	Location        string
	DurationMinutes int

	// Set when an admin schedules the battle.
	RefereeID *uint

	// At-most-once guards for the reminder sweep.
	Reminder24hSent bool `gorm:"not null;default:false"`
	Reminder1hSent  bool `gorm:"not null;default:false"`

	// Outcome flags recorded by the referee on completion.
	InitiatorNoShow  bool `gorm:"not null;default:false"`
	ChallengedNoShow bool `gorm:"not null;default:false"`
}

// IsParticipant reports whether userID is one of the two dancers.
func (b *BattleRequest) IsParticipant(userID uint) bool {
	return userID == b.InitiatorID || userID == b.ChallengedID
}

// OtherParticipant returns the participant that is not userID.
func (b *BattleRequest) OtherParticipant(userID uint) uint {
	if userID == b.InitiatorID {
		return b.ChallengedID
	}
	return b.InitiatorID
}

// StudioPreference is one row of a dancer's ranked studio list for a
// specific battle. Lower Priority means more preferred. A resubmission
// replaces the whole (battle, user) batch.
type StudioPreference struct {
	gorm.Model
	BattleRequestID uint `gorm:"not null;index:idx_pref_battle_user"`
	UserID          uint `gorm:"not null;index:idx_pref_battle_user"`
	StudioID        uint `gorm:"not null"`
	Priority        int  `gorm:"not null"`
}
