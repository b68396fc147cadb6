package battle

import (
	"dansarena/models"

	"gorm.io/gorm"
)

// notify appends one notification row inside the caller's transaction so
// that a failed transition leaves no orphan messages behind.
func notify(tx *gorm.DB, userID uint, kind, title, message string, battleID uint) error {
	n := models.Notification{
		UserID:          userID,
		Type:            kind,
		Title:           title,
		Message:         message,
		BattleRequestID: &battleID,
	}
	return tx.Create(&n).Error
}

// notifyStudio is notify with the studio back-reference set, used when the
// recipient acts on behalf of a venue.
func notifyStudio(tx *gorm.DB, userID uint, kind, title, message string, battleID, studioID uint) error {
	n := models.Notification{
		UserID:          userID,
		Type:            kind,
		Title:           title,
		Message:         message,
		BattleRequestID: &battleID,
		StudioID:        &studioID,
	}
	return tx.Create(&n).Error
}
