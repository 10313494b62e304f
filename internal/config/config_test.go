package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://file:test?mode=memory")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("CLIENT_URL", "https://app.example.com/")
	t.Setenv("ALLOWED_ORIGINS", " https://admin.example.com, http://localhost:3000 ,")
	t.Setenv("ADMIN_EMAILS", "Boss@Example.com, ops@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "https://app.example.com", cfg.ClientURL)
	require.Equal(t, []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"https://app.example.com",
		"https://admin.example.com",
	}, cfg.AllowedOrigins)

	require.True(t, cfg.IsAdminEmail("boss@example.com"))
	require.True(t, cfg.IsAdminEmail(" OPS@example.com "))
	require.False(t, cfg.IsAdminEmail("someone@example.com"))
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	_, err := Load()
	require.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/collab")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestNewLogger(t *testing.T) {
	require.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	require.Equal(t, logrus.InfoLevel, NewLogger("loud").GetLevel())
}
