package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"dansarena/auth"
	"dansarena/middlewares"
	"dansarena/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires the routes the way main.go does, minus CORS and the
// Redis-backed login limiter.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	log := zap.NewNop()
	router := gin.New()

	router.POST("/auth/register", func(c *gin.Context) {
		RegisterHandler(c, db, log)
	})
	router.POST("/auth/login", func(c *gin.Context) {
		LoginHandler(c, db, log)
	})

	authed := router.Group("/", middlewares.RequireAuth(log))
	authed.POST("/battles",
		middlewares.RequireRole(models.RoleDancer),
		func(c *gin.Context) { CreateBattleHandler(c, db, log) })
	authed.GET("/battles", func(c *gin.Context) { ListBattlesHandler(c, db, log) })
	authed.GET("/battles/check-reminders", func(c *gin.Context) { CheckRemindersHandler(c, db, log) })
	authed.GET("/battles/:id", func(c *gin.Context) { GetBattleHandler(c, db, log) })
	authed.PATCH("/battles/:id", func(c *gin.Context) { BattleActionHandler(c, db, log) })
	authed.POST("/studios",
		middlewares.RequireRole(models.RoleStudio),
		func(c *gin.Context) { CreateStudioHandler(c, db, log) })
	authed.GET("/studios", func(c *gin.Context) { ListStudiosHandler(c, db, log) })
	authed.GET("/notifications", func(c *gin.Context) { ListNotificationsHandler(c, db, log) })
	authed.PATCH("/notifications/:id/read", func(c *gin.Context) { MarkNotificationReadHandler(c, db, log) })

	return router, db
}

func seedUser(t *testing.T, db *gorm.DB, role string) (*models.User, string) {
	t.Helper()
	u := &models.User{
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "x",
		Nickname:     "u-" + uuid.New().String()[:8],
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	token, err := auth.GenerateToken(u.ID, u.Role)
	require.NoError(t, err)
	return u, token
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

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func jsonUnmarshal(raw json.RawMessage, v interface{}) error {
	return json.Unmarshal(raw, v)
}
