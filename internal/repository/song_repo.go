package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

var ErrSongNotFound = errors.New("song not found")

type SongRepository interface {
	CreateSong(song *models.Song, genreIDs, featuredArtistIDs []string) error
	GetSongByID(id string) (*models.Song, error)
	GetAllSongs() ([]models.Song, error)
	UpdateSong(song *models.Song) error
	DeleteSong(song *models.Song) error

	// IncrementPlays applies an atomic plays_count increment, never a
	// read-modify-write.
	IncrementPlays(songID string) error

	// TopGenreIDs returns up to limit genre ids ranked by how often they
	// occur across the user's liked songs. Ties resolve by genre name
	// ascending so the affinity set is deterministic.
	TopGenreIDs(userID string, limit int) ([]string, error)

	// MadeForYou: songs tagged with an affinity genre, excluding the ids in
	// excludeIDs, ranked by global play count descending.
	MadeForYou(genreIDs []string, excludeIDs []string, limit int) ([]models.Song, error)

	// RecommendedToday: newest songs first, excluding the ids in excludeIDs.
	RecommendedToday(excludeIDs []string, limit int) ([]models.Song, error)

	// TrendingSongs: songs released on or after cutoff, ranked by
	// plays_count + likes descending.
	TrendingSongs(cutoff time.Time, limit int) ([]models.Song, error)

	SearchSongs(query string) ([]models.Song, error)
	LikedSongIDs(userID string) ([]string, error)
}

type songRepo struct {
	db *gorm.DB
}

func NewSongRepository(db *gorm.DB) SongRepository {
	return &songRepo{db: db}
}

func (r *songRepo) CreateSong(song *models.Song, genreIDs, featuredArtistIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(song).Error; err != nil {
			return err
		}
		if len(genreIDs) > 0 {
			var genres []models.Genre
			if err := tx.Where("id IN ?", genreIDs).Find(&genres).Error; err != nil {
				return err
			}
			if err := tx.Model(song).Association("Genres").Append(&genres); err != nil {
				return err
			}
		}
		if len(featuredArtistIDs) > 0 {
			var artists []models.User
			if err := tx.Where("id IN ?", featuredArtistIDs).Find(&artists).Error; err != nil {
				return err
			}
			if err := tx.Model(song).Association("FeaturedArtists").Append(&artists); err != nil {
				return err
			}
		}
		if song.AlbumID != nil {
			return tx.Model(&models.Album{}).Where("id = ?", *song.AlbumID).
				UpdateColumn("total_songs", gorm.Expr("total_songs + ?", 1)).Error
		}
		return nil
	})
}

func (r *songRepo) GetSongByID(id string) (*models.Song, error) {
	var song models.Song
	err := r.db.
		Preload("Album").
		Preload("Album.Artist").
		Preload("Genres").
		Preload("FeaturedArtists").
		First(&song, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, err
	}
	return &song, nil
}

func (r *songRepo) GetAllSongs() ([]models.Song, error) {
	var songs []models.Song
	err := r.db.
		Preload("Album").
		Preload("Album.Artist").
		Preload("Genres").
		Order("created_at DESC").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return songs, nil
}

func (r *songRepo) UpdateSong(song *models.Song) error {
	return r.db.Save(song).Error
}

func (r *songRepo) DeleteSong(song *models.Song) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(song).Error; err != nil {
			return err
		}
		if song.AlbumID != nil {
			return tx.Model(&models.Album{}).Where("id = ?", *song.AlbumID).
				UpdateColumn("total_songs", gorm.Expr("total_songs - ?", 1)).Error
		}
		return nil
	})
}

func (r *songRepo) IncrementPlays(songID string) error {
	return r.db.Model(&models.Song{}).Where("id = ?", songID).
		UpdateColumn("plays_count", gorm.Expr("plays_count + ?", 1)).Error
}

func (r *songRepo) TopGenreIDs(userID string, limit int) ([]string, error) {
	type genreCount struct {
		GenreID string
		Count   int64
	}

	var counts []genreCount
	err := r.db.Table("song_genres").
		Select("song_genres.genre_id AS genre_id, COUNT(*) AS count").
		Joins("JOIN like_songs ON like_songs.song_id = song_genres.song_id").
		Joins("JOIN genres ON genres.id = song_genres.genre_id").
		Where("like_songs.user_id = ?", userID).
		Group("song_genres.genre_id, genres.name").
		Order("count DESC, genres.name ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(counts))
	for i, c := range counts {
		ids[i] = c.GenreID
	}
	return ids, nil
}

func (r *songRepo) MadeForYou(genreIDs []string, excludeIDs []string, limit int) ([]models.Song, error) {
	if len(genreIDs) == 0 {
		return []models.Song{}, nil
	}

	q := r.db.Model(&models.Song{}).
		Distinct("songs.*").
		Joins("JOIN song_genres ON song_genres.song_id = songs.id").
		Where("song_genres.genre_id IN ?", genreIDs)
	if len(excludeIDs) > 0 {
		q = q.Where("songs.id NOT IN ?", excludeIDs)
	}

	var songs []models.Song
	err := q.Order("songs.plays_count DESC").
		Limit(limit).
		Preload("Album").
		Preload("Album.Artist").
		Preload("Genres").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return songs, nil
}

func (r *songRepo) RecommendedToday(excludeIDs []string, limit int) ([]models.Song, error) {
	q := r.db.Model(&models.Song{})
	if len(excludeIDs) > 0 {
		q = q.Where("songs.id NOT IN ?", excludeIDs)
	}

	var songs []models.Song
	err := q.Order("released_date DESC").
		Limit(limit).
		Preload("Album").
		Preload("Album.Artist").
		Preload("Genres").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return songs, nil
}

func (r *songRepo) TrendingSongs(cutoff time.Time, limit int) ([]models.Song, error) {
	var songs []models.Song
	err := r.db.Model(&models.Song{}).
		Where("released_date >= ?", cutoff).
		Order("(plays_count + likes) DESC").
		Limit(limit).
		Preload("Album").
		Preload("Album.Artist").
		Preload("Genres").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return songs, nil
}

// SearchSongs matches the query against the song title, album title and the
// album artist's display name using the store's full-text ranking.
func (r *songRepo) SearchSongs(query string) ([]models.Song, error) {
	var songs []models.Song
	err := r.db.Model(&models.Song{}).
		Joins("LEFT JOIN albums ON albums.id = songs.album_id").
		Joins("LEFT JOIN users ON users.id = albums.artist_id").
		Where(
			"to_tsvector('english', coalesce(songs.title, '') || ' ' || coalesce(albums.title, '') || ' ' || coalesce(users.display_name, '')) @@ plainto_tsquery('english', ?)",
			query,
		).
		Preload("Album").
		Preload("Album.Artist").
		Preload("Genres").
		Preload("FeaturedArtists").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return songs, nil
}

func (r *songRepo) LikedSongIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.LikeSong{}).
		Where("user_id = ?", userID).
		Pluck("song_id", &ids).Error
	return ids, err
}
