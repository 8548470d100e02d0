package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/huddle-dev/huddle/db"
	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/config"
	"github.com/huddle-dev/huddle/internal/handlers"
	"github.com/huddle-dev/huddle/internal/middleware"
	"github.com/huddle-dev/huddle/internal/notify"
	"github.com/huddle-dev/huddle/internal/router"
	"github.com/huddle-dev/huddle/internal/services"
	"github.com/huddle-dev/huddle/internal/store"
)

func main() {
	// A missing .env is fine in production; config comes from the
	// environment either way.
	_ = godotenv.Load()

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()

	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	conn, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.Migrate(conn); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	userStore := store.NewUserStore(conn)
	contactStore := store.NewContactStore(conn)
	projectStore := store.NewProjectStore(conn)

	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := services.NewAuthService(userStore, tokenService)
	contactService := services.NewContactService(userStore, contactStore, cfg.AllowResendAfterReject)
	projectService := services.NewProjectService(userStore, contactStore, projectStore)

	hub := notify.NewHub(logger, cfg.AllowedOrigins())

	r := router.New(router.Handlers{
		Auth:     handlers.NewAuthHandler(authService, logger),
		Contacts: handlers.NewContactHandler(contactService, hub, logger),
		Projects: handlers.NewProjectHandler(projectService, hub, logger),
		Events:   handlers.NewEventsHandler(hub),
	}, middleware.Auth(authService), cfg.AllowedOrigins())

	logger.Info("Starting server", zap.String("port", cfg.Port))

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
