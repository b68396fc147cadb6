package battle

import (
	"testing"
	"time"

	"dansarena/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// confirmedBattle seeds a CONFIRMED battle starting at startsAt.
func confirmedBattle(t *testing.T, db *gorm.DB, startsAt time.Time) *models.BattleRequest {
	t.Helper()
	d1 := seedUser(t, db, models.RoleDancer)
	d2 := seedUser(t, db, models.RoleDancer)
	date := time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, startsAt.Location())
	br := &models.BattleRequest{
		ShareCode:       "code-" + startsAt.Format("150405.000000000"),
		InitiatorID:     d1.ID,
		ChallengedID:    d2.ID,
		Status:          StatusConfirmed,
		ScheduledDate:   &date,
		ScheduledTime:   startsAt.Format("15:04"),
		Location:        "Hall 1",
		DurationMinutes: 60,
	}
	require.NoError(t, db.Create(br).Error)
	return br
}

func TestReminderSweepSendsOnceWithinWindow(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	br := confirmedBattle(t, db, now.Add(10*time.Hour))

	result, err := RunReminderSweep(db, logger, now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent24h)
	assert.Equal(t, 0, result.Sent1h)

	// Each participant got exactly one 24h reminder.
	for _, userID := range []uint{br.InitiatorID, br.ChallengedID} {
		ns := notificationsFor(t, db, userID)
		require.Len(t, ns, 1)
		assert.Equal(t, models.NotificationReminder24h, ns[0].Type)
	}

	// Second invocation in the same window: the flag blocks a resend.
	result, err = RunReminderSweep(db, logger, now)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Sent24h)
	assert.Len(t, notificationsFor(t, db, br.InitiatorID), 1)
}

func TestReminderSweepOneHourWindow(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	br := confirmedBattle(t, db, now.Add(30*time.Minute))

	// Inside one hour both thresholds fire together.
	result, err := RunReminderSweep(db, logger, now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent24h)
	assert.Equal(t, 1, result.Sent1h)

	ns := notificationsFor(t, db, br.InitiatorID)
	require.Len(t, ns, 2)

	result, err = RunReminderSweep(db, logger, now.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Sent24h)
	assert.Equal(t, 0, result.Sent1h)
}

func TestReminderSweepSkipsFarAndPastBattles(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	far := confirmedBattle(t, db, now.Add(72*time.Hour))
	past := confirmedBattle(t, db, now.Add(-2*time.Hour))

	result, err := RunReminderSweep(db, logger, now)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Sent24h)
	assert.Equal(t, 0, result.Sent1h)
	assert.Empty(t, notificationsFor(t, db, far.InitiatorID))
	assert.Empty(t, notificationsFor(t, db, past.InitiatorID))
}

func TestReminderSweepCoversScheduledStatus(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	br := confirmedBattle(t, db, now.Add(10*time.Hour))
	require.NoError(t, db.Model(br).Update("status", StatusBattleScheduled).Error)

	result, err := RunReminderSweep(db, logger, now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent24h)
}

func TestExpireStalePending(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()
	d1 := seedUser(t, db, models.RoleDancer)
	d2 := seedUser(t, db, models.RoleDancer)

	br, err := Create(db, d1.ID, models.CreateBattleRequest{ChallengedID: d2.ID})
	require.NoError(t, err)

	// Too young to expire.
	expired, err := ExpireStalePending(db, logger, 14*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, expired)

	// Age the row, then expire it.
	old := time.Now().Add(-15 * 24 * time.Hour)
	require.NoError(t, db.Model(&models.BattleRequest{}).
		Where("id = ?", br.ID).Update("created_at", old).Error)

	expired, err = ExpireStalePending(db, logger, 14*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	var after models.BattleRequest
	require.NoError(t, db.First(&after, br.ID).Error)
	assert.Equal(t, StatusRejected, after.Status)

	ns := notificationsFor(t, db, d1.ID)
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationBattleExpired, ns[0].Type)
}
