package main

import (
	"time"

	"go.uber.org/zap"

	"dansarena/auth"
	"dansarena/database"
	"dansarena/handlers"
	"dansarena/middlewares"
	"dansarena/migrations"
	"dansarena/models"
	"dansarena/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func main() {
	logger, err := utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// PostgreSQL and Redis come up in parallel.
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		config, err := database.LoadConfig("config.json")
		if err != nil {
			logger.Fatal("failed to load config file", zap.Error(err))
		}
		if config.JWTSecret != "" {
			auth.JwtKey = []byte(config.JWTSecret)
		}
		db, err = database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("failed to initialize PostgreSQL", zap.Error(err))
		}
		if err := migrations.AutoMigrateDB(db); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		done <- true
	}()

	go func() {
		var err error
		rdb, err = database.InitRedis(logger)
		if err != nil {
			logger.Fatal("failed to initialize Redis", zap.Error(err))
		}
		done <- true
	}()

	<-done
	<-done

	// Hourly reminder sweep and daily cleanup.
	go utils.CronJobs(db, logger)

	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/auth/register", func(c *gin.Context) {
		handlers.RegisterHandler(c, db, logger)
	})
	router.POST("/auth/login",
		middlewares.LoginRateLimit(rdb, logger, 10, time.Minute),
		func(c *gin.Context) {
			handlers.LoginHandler(c, db, logger)
		})

	authed := router.Group("/", middlewares.RequireAuth(logger))

	authed.POST("/battles",
		middlewares.RequireRole(models.RoleDancer),
		func(c *gin.Context) {
			handlers.CreateBattleHandler(c, db, logger)
		})
	authed.GET("/battles", func(c *gin.Context) {
		handlers.ListBattlesHandler(c, db, logger)
	})
	// Registered before /battles/:id so gin does not treat it as an id.
	authed.GET("/battles/check-reminders", func(c *gin.Context) {
		handlers.CheckRemindersHandler(c, db, logger)
	})
	authed.GET("/battles/:id", func(c *gin.Context) {
		handlers.GetBattleHandler(c, db, logger)
	})
	authed.PATCH("/battles/:id", func(c *gin.Context) {
		handlers.BattleActionHandler(c, db, logger)
	})

	authed.POST("/studios",
		middlewares.RequireRole(models.RoleStudio),
		func(c *gin.Context) {
			handlers.CreateStudioHandler(c, db, logger)
		})
	authed.GET("/studios", func(c *gin.Context) {
		handlers.ListStudiosHandler(c, db, logger)
	})

	authed.GET("/notifications", func(c *gin.Context) {
		handlers.ListNotificationsHandler(c, db, logger)
	})
	authed.PATCH("/notifications/:id/read", func(c *gin.Context) {
		handlers.MarkNotificationReadHandler(c, db, logger)
	})

	router.Run()
}
