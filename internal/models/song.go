package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Genre struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

type Album struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	ArtistID    string     `gorm:"type:uuid;not null;index" json:"artist_id"`
	Description string     `gorm:"type:varchar(255)" json:"description"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	CoverURL    string     `json:"cover_url"`
	// Maintained by atomic increments on song create/delete, not by a count
	// query on read.
	TotalSongs int       `gorm:"default:0" json:"total_songs"`
	CreatedAt  time.Time `json:"created_at"`

	Artist User   `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
	Songs  []Song `gorm:"foreignKey:AlbumID" json:"songs,omitempty"`

	// Derived aggregates, filled on read by summing constituent songs.
	TotalPlays int64 `gorm:"-" json:"total_plays,omitempty"`
	TotalLikes int64 `gorm:"-" json:"total_likes,omitempty"`
}

func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type Song struct {
	ID              string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	AlbumID         *string    `gorm:"type:uuid;index" json:"album_id,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	Lyrics          string     `gorm:"type:text" json:"lyrics,omitempty"`
	Description     string     `gorm:"type:text" json:"description,omitempty"`
	AudioURL        string     `gorm:"not null" json:"audio_url"`
	CoverURL        string     `json:"cover_url"`
	PlaysCount      int64      `gorm:"default:0" json:"plays_count"`
	Likes           int64      `gorm:"default:0" json:"likes"`
	Dislikes        int64      `gorm:"default:0" json:"dislikes"`
	ReleasedDate    *time.Time `json:"released_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`

	Album           *Album  `gorm:"foreignKey:AlbumID" json:"album,omitempty"`
	Genres          []Genre `gorm:"many2many:song_genres" json:"genres,omitempty"`
	FeaturedArtists []User  `gorm:"many2many:song_featured_artists" json:"featured_artists,omitempty"`

	IsLiked bool `gorm:"-" json:"is_liked"`
}

func (s *Song) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// LikeSong and UnlikeSong are mutually exclusive per (user, song) pair;
// the engagement repository enforces that inside one transaction.
type LikeSong struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_like_pair" json:"user_id"`
	SongID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_like_pair" json:"song_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Song Song `gorm:"foreignKey:SongID" json:"song,omitempty"`
}

func (l *LikeSong) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type UnlikeSong struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_unlike_pair" json:"user_id"`
	SongID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_unlike_pair" json:"song_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Song Song `gorm:"foreignKey:SongID" json:"song,omitempty"`
}

func (u *UnlikeSong) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type SongCreate struct {
	Title           string     `json:"title" binding:"required"`
	AlbumID         *string    `json:"album_id"`
	DurationSeconds int        `json:"duration_seconds"`
	Lyrics          string     `json:"lyrics"`
	Description     string     `json:"description"`
	AudioURL        string     `json:"audio_url" binding:"required"`
	CoverURL        string     `json:"cover_url"`
	ReleasedDate    *time.Time `json:"released_date"`
	GenreIDs        []string   `json:"genre_ids"`
	FeaturedArtists []string   `json:"featured_artist_ids"`
}

type AlbumCreate struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ReleaseDate *time.Time `json:"release_date"`
	CoverURL    string     `json:"cover_url"`
}
