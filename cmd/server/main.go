package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homequest/server/config"
	"homequest/server/internal/api"
	"homequest/server/internal/auth"
	"homequest/server/internal/chat"
	"homequest/server/internal/database"
	"homequest/server/internal/deals"
	"homequest/server/internal/favorites"
	"homequest/server/internal/insights"
	"homequest/server/internal/properties"
	"homequest/server/internal/realtime"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.DatabasePath)
	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	if cfg.SeedOnStart {
		if err := db.Seed(logger); err != nil {
			logger.WithError(err).Fatal("Failed to seed database")
		}
	}

	hub := realtime.NewHub(logger)

	authService := auth.NewService(db.DB(), logger, cfg.JWTSecret, cfg.AccessTokenTTLHours, cfg.RefreshTokenTTLDays)
	insightService := insights.NewService(db.DB(), logger)
	propertyService := properties.NewService(db.DB(), logger)
	favoriteService := favorites.NewService(db.DB(), logger)
	dealService := deals.NewService(db.DB(), logger)
	chatService := chat.NewService(chat.NewStore(), db.DB(), dealService, hub, logger)

	handler := api.NewHandler(cfg, db.DB(), logger, authService, insightService, propertyService, favoriteService, dealService, chatService, hub)

	router := gin.New()
	router.Use(gin.Recovery())
	handler.SetupRoutes(router)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
