package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/database"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "hashed",
		DisplayName: username,
		Role:        models.RoleListener,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestSong(t *testing.T, db *gorm.DB, title string, genres ...models.Genre) *models.Song {
	t.Helper()

	song := &models.Song{
		Title:    title,
		AudioURL: "https://cdn.example.com/" + title + ".mp3",
		Genres:   genres,
	}
	require.NoError(t, db.Create(song).Error)
	return song
}

func createTestGenre(t *testing.T, db *gorm.DB, name string) models.Genre {
	t.Helper()

	genre := models.Genre{Name: name}
	require.NoError(t, db.Create(&genre).Error)
	return genre
}

func daysAgo(n int) *time.Time {
	ts := time.Now().AddDate(0, 0, -n)
	return &ts
}
