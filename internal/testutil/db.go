// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory sqlite database private to the test.
// A single connection keeps concurrent transactions serialized the way row
// locks would on postgres.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.MigrateDatabase(gdb))
	return gdb
}

func CreateUser(t *testing.T, gdb *gorm.DB, name string, admin bool) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "x",
		IsAdmin:      admin,
	}
	require.NoError(t, gdb.Create(&user).Error)
	return user
}

func CreateProject(t *testing.T, gdb *gorm.DB, owner models.User, status models.ProjectStatus) models.Project {
	t.Helper()

	project := models.Project{
		OwnerID:        owner.ID,
		Title:          "Logo Design",
		Description:    "Design a logo",
		RequiredPeople: 1,
		Status:         status,
	}
	require.NoError(t, gdb.Create(&project).Error)
	return project
}
