package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// Only public playlists are eligible for search results and
// cross-user recommendation sections.
type Playlist struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Privacy    string    `gorm:"type:varchar(10);default:'public'" json:"privacy"`
	TotalSongs int       `gorm:"default:0" json:"total_songs"`
	CreatedAt  time.Time `json:"created_at"`

	User  User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Songs []Song `gorm:"many2many:playlist_songs" json:"songs,omitempty"`

	// Summed play count of member songs, filled by aggregate queries only.
	TotalPlays int64 `gorm:"-" json:"total_plays,omitempty"`
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type PlaylistCreate struct {
	Name    string `json:"name" binding:"required"`
	Privacy string `json:"privacy" binding:"omitempty,oneof=public private"`
}

type PlaylistSongToggle struct {
	PlaylistID string `json:"playlist_id" binding:"required"`
	SongID     string `json:"song_id" binding:"required"`
}
