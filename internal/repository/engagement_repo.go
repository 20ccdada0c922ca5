package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

var (
	ErrAlreadyLiked    = errors.New("song already liked")
	ErrAlreadyUnliked  = errors.New("song already unliked")
	ErrSelfFollow      = errors.New("users cannot follow themselves")
	ErrAlreadyFollowed = errors.New("user already followed")
	ErrNotFollowing    = errors.New("not following this user")
)

// EngagementRepository records likes, unlikes and follows. Liking a song
// removes any unlike for the same (user, song) pair and vice versa, and the
// song's denormalized counters are recomputed from the relation rows inside
// the same transaction.
type EngagementRepository interface {
	LikeSong(userID, songID string) error
	UnlikeSong(userID, songID string) error
	LikedSongIDs(userID string) ([]string, error)
	DislikedSongIDs(userID string) ([]string, error)
	IsSongLikedByUser(userID, songID string) (bool, error)
	LikedSongs(userID string) ([]models.LikeSong, error)

	FollowUser(followerID, followedID string) error
	UnfollowUser(followerID, followedID string) error
	Followers(userID string) ([]models.User, error)
	Following(userID string) ([]models.User, error)
}

type engagementRepo struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepo{db: db}
}

func (r *engagementRepo) LikeSong(userID, songID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.LikeSong{}).
			Where("user_id = ? AND song_id = ?", userID, songID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyLiked
		}

		if err := tx.Create(&models.LikeSong{UserID: userID, SongID: songID}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND song_id = ?", userID, songID).
			Delete(&models.UnlikeSong{}).Error; err != nil {
			return err
		}
		return r.updateCounts(tx, songID)
	})
}

func (r *engagementRepo) UnlikeSong(userID, songID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UnlikeSong{}).
			Where("user_id = ? AND song_id = ?", userID, songID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyUnliked
		}

		if err := tx.Create(&models.UnlikeSong{UserID: userID, SongID: songID}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND song_id = ?", userID, songID).
			Delete(&models.LikeSong{}).Error; err != nil {
			return err
		}
		return r.updateCounts(tx, songID)
	})
}

// updateCounts recomputes the song's likes and dislikes from the relation
// tables, as the write side of the denormalized counters.
func (r *engagementRepo) updateCounts(tx *gorm.DB, songID string) error {
	var likes, dislikes int64
	if err := tx.Model(&models.LikeSong{}).Where("song_id = ?", songID).Count(&likes).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.UnlikeSong{}).Where("song_id = ?", songID).Count(&dislikes).Error; err != nil {
		return err
	}
	return tx.Model(&models.Song{}).Where("id = ?", songID).
		Updates(map[string]interface{}{"likes": likes, "dislikes": dislikes}).Error
}

func (r *engagementRepo) LikedSongIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.LikeSong{}).
		Where("user_id = ?", userID).
		Pluck("song_id", &ids).Error
	return ids, err
}

func (r *engagementRepo) DislikedSongIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.UnlikeSong{}).
		Where("user_id = ?", userID).
		Pluck("song_id", &ids).Error
	return ids, err
}

func (r *engagementRepo) IsSongLikedByUser(userID, songID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.LikeSong{}).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepo) LikedSongs(userID string) ([]models.LikeSong, error) {
	var likes []models.LikeSong
	err := r.db.Where("user_id = ?", userID).
		Preload("Song").
		Preload("Song.Album").
		Preload("Song.Genres").
		Order("created_at DESC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []models.LikeSong{}
	}
	return likes, nil
}

func (r *engagementRepo) FollowUser(followerID, followedID string) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyFollowed
	}

	return r.db.Create(&models.Follow{FollowerID: followerID, FollowedID: followedID}).Error
}

func (r *engagementRepo) UnfollowUser(followerID, followedID string) error {
	result := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (r *engagementRepo) Followers(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (r *engagementRepo) Following(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
