package main

import (
	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/auth"
	"github.com/collabsphere/collabsphere/internal/config"
	"github.com/collabsphere/collabsphere/internal/handlers"
	"github.com/collabsphere/collabsphere/internal/router"
	"github.com/collabsphere/collabsphere/internal/services"
	"github.com/collabsphere/collabsphere/internal/store"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := config.NewLogger(cfg.LogLevel)

	if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to initialise JWT: %v", err)
	}

	gdb, err := db.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.MigrateDatabase(gdb); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	users := store.NewUserStore(gdb)
	hub := handlers.NewNotificationHub(log, cfg.AllowedOrigins)

	opts := []services.Option{services.WithPublisher(hub)}
	if relay := services.NewWebhookRelay(cfg.DiscordWebhookURL, cfg.SlackWebhookURL, cfg.ClientURL); relay.Enabled() {
		opts = append(opts, services.WithAdminRelay(relay))
		log.Info("Admin webhook relay enabled")
	}

	h := &handlers.Handler{
		DB:       gdb,
		Workflow: services.New(gdb, users, log, opts...),
		Users:    users,
		Hub:      hub,
		Config:   cfg,
		Log:      log,
	}

	r := router.NewRouter(h)

	log.WithField("port", cfg.Port).Info("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
