package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/models"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/security"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the domain schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A second pooled connection would see an empty in-memory schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Favorite{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, login, email string, admin bool) *models.User {
	t.Helper()

	hash, err := security.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Email:        email,
		Login:        login,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, title, content string) *models.Post {
	t.Helper()

	post := models.Post{AuthorID: authorID, Title: title, Content: content}
	require.NoError(t, db.Create(&post).Error)
	return &post
}
