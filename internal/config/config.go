// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Default allowed origins for development
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

type Config struct {
	Port              string
	DatabaseURL       string
	JWTSecret         string
	ClientURL         string
	AllowedOrigins    []string
	AdminEmails       []string
	CookieDomain      string
	LogLevel          string
	DiscordWebhookURL string
	SlackWebhookURL   string
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Config{
		Port:              getEnv("PORT", "3000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		ClientURL:         strings.TrimRight(getEnv("CLIENT_URL", "http://localhost:3000"), "/"),
		CookieDomain:      os.Getenv("COOKIE_DOMAIN"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
		SlackWebhookURL:   os.Getenv("SLACK_WEBHOOK_URL"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	cfg.AllowedOrigins = allowedOrigins(cfg.ClientURL, os.Getenv("ALLOWED_ORIGINS"))
	for _, email := range splitList(os.Getenv("ADMIN_EMAILS")) {
		cfg.AdminEmails = append(cfg.AdminEmails, strings.ToLower(email))
	}

	return cfg, nil
}

// IsAdminEmail reports whether accounts registered with email get admin rights.
func (c Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func allowedOrigins(clientURL, extra string) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL != "" && !contains(origins, clientURL) {
		origins = append(origins, clientURL)
	}
	for _, origin := range splitList(extra) {
		if !contains(origins, origin) {
			origins = append(origins, origin)
		}
	}
	return origins
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// NewLogger builds the JSON logger shared by the server and the services.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.WithField("level", level).Warn("unknown LOG_LEVEL, defaulting to info")
	}
	log.SetLevel(lvl)
	return log
}
