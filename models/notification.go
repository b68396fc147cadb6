package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification types emitted by battle transitions and the reminder sweep.
const (
	NotificationBattleInvite    = "battle_invite"
	NotificationBattleAccepted  = "battle_accepted"
	NotificationBattleRejected  = "battle_rejected"
	NotificationStudioRequest   = "studio_request"
	NotificationStudioApproved  = "studio_approved"
	NotificationStudioRejected  = "studio_rejected"
	NotificationBattleScheduled = "battle_scheduled"
	NotificationBattleCompleted = "battle_completed"
	NotificationBattleExpired   = "battle_expired"
	NotificationReminder24h     = "reminder_24h"
	NotificationReminder1h      = "reminder_1h"
)

// Notification is an append-only per-user message created as a side effect
// of state transitions. Only IsRead/ReadAt are ever mutated afterwards.
type Notification struct {
	gorm.Model
	UserID          uint   `gorm:"not null;index"`
	Type            string `gorm:"not null"`
	Title           string `gorm:"not null"`
	Message         string
	BattleRequestID *uint
	StudioID        *uint
	IsRead          bool `gorm:"not null;default:false"`
	ReadAt          *time.Time
}
