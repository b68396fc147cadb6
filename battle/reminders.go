package battle

import (
	"fmt"
	"time"

	"dansarena/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SweepResult reports how many reminders a sweep run sent per threshold.
type SweepResult struct {
	Sent24h int `json:"sent24h"`
	Sent1h  int `json:"sent1h"`
}

// RunReminderSweep scans CONFIRMED and BATTLE_SCHEDULED battles whose
// start falls within 24h (resp. 1h) of now and whose sent-flag is still
// false, emits one reminder per participant, and flips the flag in the
// same transaction. The flag doubles as the optimistic guard, so repeated
// or overlapping invocations send each reminder at most once.
func RunReminderSweep(db *gorm.DB, logger *zap.Logger, now time.Time) (SweepResult, error) {
	var result SweepResult

	var battles []models.BattleRequest
	err := db.Where("status IN ? AND scheduled_date IS NOT NULL",
		[]string{StatusConfirmed, StatusBattleScheduled}).
		Find(&battles).Error
	if err != nil {
		return result, err
	}

	for i := range battles {
		br := &battles[i]
		startsAt, err := battleStart(br)
		if err != nil {
			logger.Warn("skipping battle with unparseable schedule",
				zap.Uint("battleID", br.ID), zap.Error(err))
			continue
		}
		until := startsAt.Sub(now)
		if until <= 0 {
			continue
		}

		if until <= 24*time.Hour && !br.Reminder24hSent {
			if err := sendReminder(db, br, models.NotificationReminder24h,
				"Battle tomorrow",
				"Your battle starts in less than 24 hours.",
				"reminder24h_sent"); err != nil {
				return result, err
			}
			result.Sent24h++
		}
		if until <= time.Hour && !br.Reminder1hSent {
			if err := sendReminder(db, br, models.NotificationReminder1h,
				"Battle starting soon",
				"Your battle starts in less than an hour.",
				"reminder1h_sent"); err != nil {
				return result, err
			}
			result.Sent1h++
		}
	}
	return result, nil
}

// sendReminder flips the flag column and writes both participant
// notifications in one transaction. The flag-guarded UPDATE makes a lost
// race a silent no-op instead of a duplicate reminder.
func sendReminder(db *gorm.DB, br *models.BattleRequest, kind, title, message, flagColumn string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.BattleRequest{}).
			Where("id = ? AND "+flagColumn+" = ?", br.ID, false).
			Update(flagColumn, true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Another sweep got here first.
			return nil
		}
		for _, dancerID := range []uint{br.InitiatorID, br.ChallengedID} {
			if err := notify(tx, dancerID, kind, title, message, br.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// battleStart combines ScheduledDate and ScheduledTime into the battle's
// start instant.
func battleStart(br *models.BattleRequest) (time.Time, error) {
	if br.ScheduledDate == nil {
		return time.Time{}, fmt.Errorf("battle %d has no scheduled date", br.ID)
	}
	clock, err := time.Parse("15:04", br.ScheduledTime)
	if err != nil {
		return time.Time{}, err
	}
	d := *br.ScheduledDate
	return time.Date(d.Year(), d.Month(), d.Day(),
		clock.Hour(), clock.Minute(), 0, 0, d.Location()), nil
}

// ExpireStalePending rejects PENDING battles that have seen no answer for
// longer than maxAge and tells the initiator. Called from the daily cron.
func ExpireStalePending(db *gorm.DB, logger *zap.Logger, maxAge time.Duration) (int, error) {
	var stale []models.BattleRequest
	cutoff := time.Now().Add(-maxAge)
	if err := db.Where("status = ? AND created_at <= ?", StatusPending, cutoff).
		Find(&stale).Error; err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		br := &stale[i]
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := advance(tx, br.ID, StatusPending, map[string]interface{}{
				"status": StatusRejected,
			}); err != nil {
				return err
			}
			return notify(tx, br.InitiatorID, models.NotificationBattleExpired,
				"Challenge expired",
				"Your challenge went unanswered and has been closed.", br.ID)
		})
		if err != nil {
			logger.Error("failed to expire stale battle",
				zap.Uint("battleID", br.ID), zap.Error(err))
			continue
		}
		expired++
	}
	return expired, nil
}
