package repository

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

var ErrInvalidPlayItem = errors.New("exactly one of song or playlist must be set")

// RecentRepository maintains the per-user recently-played ring: at most
// models.RecentlyPlayedCapacity distinct items, oldest evicted first,
// replays only touch the timestamp.
type RecentRepository interface {
	RecordPlay(userID string, songID, playlistID *string, now time.Time) error
	ListRecent(userID string) ([]models.RecentlyPlayed, error)
	CountSince(userID string, since time.Time) (int64, error)

	// SongsPlayedSince returns the ring's song entries with PlayedAt at or
	// after since, genres preloaded, for the daily genre tally.
	SongsPlayedSince(userID string, since time.Time) ([]models.RecentlyPlayed, error)
}

type recentRepo struct {
	db *gorm.DB
	// Serializes the count/evict/upsert sequence per user so concurrent
	// plays cannot break the capacity invariant or lose a touch.
	locks sync.Map
}

func NewRecentRepository(db *gorm.DB) RecentRepository {
	return &recentRepo{db: db}
}

func (r *recentRepo) userLock(userID string) *sync.Mutex {
	lock, _ := r.locks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (r *recentRepo) RecordPlay(userID string, songID, playlistID *string, now time.Time) error {
	if (songID == nil) == (playlistID == nil) {
		return ErrInvalidPlayItem
	}

	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ?", userID)
		if songID != nil {
			q = q.Where("song_id = ?", *songID)
		} else {
			q = q.Where("playlist_id = ?", *playlistID)
		}

		var existing models.RecentlyPlayed
		err := q.First(&existing).Error
		if err == nil {
			// Replay of a known item: touch it to the front.
			return tx.Model(&models.RecentlyPlayed{}).
				Where("id = ?", existing.ID).
				Update("played_at", now).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64
		if err := tx.Model(&models.RecentlyPlayed{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			return err
		}

		if count >= models.RecentlyPlayedCapacity {
			var oldest models.RecentlyPlayed
			if err := tx.Where("user_id = ?", userID).
				Order("played_at ASC").
				First(&oldest).Error; err != nil {
				return err
			}
			if err := tx.Delete(&oldest).Error; err != nil {
				return err
			}
		}

		entry := models.RecentlyPlayed{
			UserID:     userID,
			SongID:     songID,
			PlaylistID: playlistID,
			PlayedAt:   now,
		}
		return tx.Create(&entry).Error
	})
}

func (r *recentRepo) ListRecent(userID string) ([]models.RecentlyPlayed, error) {
	var entries []models.RecentlyPlayed
	err := r.db.Where("user_id = ?", userID).
		Order("played_at DESC").
		Preload("Song").
		Preload("Song.Album").
		Preload("Song.Genres").
		Preload("Playlist").
		Preload("Playlist.User").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.RecentlyPlayed{}
	}
	return entries, nil
}

func (r *recentRepo) CountSince(userID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.RecentlyPlayed{}).
		Where("user_id = ? AND played_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *recentRepo) SongsPlayedSince(userID string, since time.Time) ([]models.RecentlyPlayed, error) {
	var entries []models.RecentlyPlayed
	err := r.db.Where("user_id = ? AND song_id IS NOT NULL AND played_at >= ?", userID, since).
		Order("played_at DESC").
		Preload("Song").
		Preload("Song.Genres").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.RecentlyPlayed{}
	}
	return entries, nil
}
