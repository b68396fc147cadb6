package battle

import (
	"path/filepath"
	"testing"

	"dansarena/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Studio{},
		&models.BattleRequest{},
		&models.StudioPreference{},
		&models.Notification{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	u := &models.User{
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "x",
		Nickname:     "u-" + uuid.New().String()[:8],
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedStudio(t *testing.T, db *gorm.DB, ownerID uint) *models.Studio {
	t.Helper()
	s := &models.Studio{
		OwnerID:     ownerID,
		Name:        "studio-" + uuid.New().String()[:8],
		Address:     "Main St 1",
		Capacity:    40,
		HourlyPrice: 500,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []models.Notification {
	t.Helper()
	var out []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("id").Find(&out).Error)
	return out
}
