package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecentlyPlayed is one entry of the per-user recently-played ring.
// Exactly one of SongID / PlaylistID is set. The ring holds at most
// RecentlyPlayedCapacity distinct items per user; replaying an item only
// touches its PlayedAt.
type RecentlyPlayed struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	SongID     *string   `gorm:"type:uuid;index" json:"song_id,omitempty"`
	PlaylistID *string   `gorm:"type:uuid;index" json:"playlist_id,omitempty"`
	PlayedAt   time.Time `gorm:"index" json:"played_at"`

	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Song     *Song     `gorm:"foreignKey:SongID" json:"song,omitempty"`
	Playlist *Playlist `gorm:"foreignKey:PlaylistID" json:"playlist,omitempty"`
}

const RecentlyPlayedCapacity = 6

func (r *RecentlyPlayed) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
