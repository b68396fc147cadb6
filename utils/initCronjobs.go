package utils

import (
	"time"

	"dansarena/battle"
	"dansarena/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const stalePendingMaxAge = 14 * 24 * time.Hour

// CronJobs starts the periodic maintenance: the hourly reminder sweep
// (same function the check-reminders endpoint calls) and daily cleanup of
// unanswered challenges and old read notifications.
func CronJobs(db *gorm.DB, logger *zap.Logger) {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		result, err := battle.RunReminderSweep(db, logger, time.Now())
		if err != nil {
			logger.Error("scheduled reminder sweep failed", zap.Error(err))
			return
		}
		if result.Sent24h > 0 || result.Sent1h > 0 {
			logger.Info("scheduled reminder sweep finished",
				zap.Int("sent24h", result.Sent24h),
				zap.Int("sent1h", result.Sent1h))
		}
	})

	c.AddFunc("0 3 * * *", func() {
		expired, err := battle.ExpireStalePending(db, logger, stalePendingMaxAge)
		if err != nil {
			logger.Error("failed to expire stale challenges", zap.Error(err))
		} else if expired > 0 {
			logger.Info("expired stale challenges", zap.Int("count", expired))
		}

		// Read notifications older than 90 days are no longer useful.
		result := db.Where("is_read = ? AND created_at <= ?",
			true, time.Now().Add(-90*24*time.Hour)).
			Delete(&models.Notification{})
		if result.Error != nil {
			logger.Error("failed to purge old notifications", zap.Error(result.Error))
		} else if result.RowsAffected > 0 {
			logger.Info("purged old notifications", zap.Int64("count", result.RowsAffected))
		}
	})

	c.Start()
}
