package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

var ErrPlaylistNotFound = errors.New("playlist not found")

type PlaylistRepository interface {
	CreatePlaylist(playlist *models.Playlist) error
	GetPlaylistByID(id string) (*models.Playlist, error)
	GetPublicPlaylists() ([]models.Playlist, error)
	GetPlaylistsByUser(userID string) ([]models.Playlist, error)
	CountByUser(userID string) (int64, error)
	DeletePlaylist(playlist *models.Playlist) error

	// ToggleSong adds the song when absent and removes it when present,
	// adjusting total_songs atomically. Returns true when the song was added.
	ToggleSong(playlist *models.Playlist, song *models.Song) (bool, error)

	// PlaylistsByGenres: public playlists containing at least one song
	// tagged with one of the given genres.
	PlaylistsByGenres(genreIDs []string, limit int) ([]models.Playlist, error)

	// TrendingPlaylists: public playlists ranked by summed member play
	// count descending, only positive totals.
	TrendingPlaylists(limit int) ([]models.Playlist, error)

	SearchPlaylists(query string) ([]models.Playlist, error)
}

type playlistRepo struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepo{db: db}
}

func (r *playlistRepo) CreatePlaylist(playlist *models.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *playlistRepo) GetPlaylistByID(id string) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.db.
		Preload("User").
		Preload("Songs").
		Preload("Songs.Album").
		Preload("Songs.Genres").
		First(&playlist, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepo) GetPublicPlaylists() ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := r.db.Where("privacy = ?", models.PrivacyPublic).
		Preload("User").
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	return playlists, nil
}

func (r *playlistRepo) GetPlaylistsByUser(userID string) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := r.db.Where("user_id = ?", userID).Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	return playlists, nil
}

func (r *playlistRepo) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Playlist{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *playlistRepo) DeletePlaylist(playlist *models.Playlist) error {
	return r.db.Select("Songs").Delete(playlist).Error
}

func (r *playlistRepo) ToggleSong(playlist *models.Playlist, song *models.Song) (bool, error) {
	var count int64
	err := r.db.Table("playlist_songs").
		Where("playlist_id = ? AND song_id = ?", playlist.ID, song.ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	added := count == 0
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if added {
			if err := tx.Model(playlist).Association("Songs").Append(song); err != nil {
				return err
			}
			return tx.Model(&models.Playlist{}).Where("id = ?", playlist.ID).
				UpdateColumn("total_songs", gorm.Expr("total_songs + ?", 1)).Error
		}
		if err := tx.Model(playlist).Association("Songs").Delete(song); err != nil {
			return err
		}
		return tx.Model(&models.Playlist{}).Where("id = ?", playlist.ID).
			UpdateColumn("total_songs", gorm.Expr("total_songs - ?", 1)).Error
	})
	return added, err
}

func (r *playlistRepo) PlaylistsByGenres(genreIDs []string, limit int) ([]models.Playlist, error) {
	if len(genreIDs) == 0 {
		return []models.Playlist{}, nil
	}

	var playlists []models.Playlist
	err := r.db.Model(&models.Playlist{}).
		Distinct("playlists.*").
		Joins("JOIN playlist_songs ON playlist_songs.playlist_id = playlists.id").
		Joins("JOIN song_genres ON song_genres.song_id = playlist_songs.song_id").
		Where("song_genres.genre_id IN ?", genreIDs).
		Where("playlists.privacy = ?", models.PrivacyPublic).
		Limit(limit).
		Preload("User").
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	return playlists, nil
}

func (r *playlistRepo) TrendingPlaylists(limit int) ([]models.Playlist, error) {
	type playlistTotal struct {
		PlaylistID string
		TotalPlays int64
	}

	var totals []playlistTotal
	err := r.db.Table("playlists").
		Select("playlists.id AS playlist_id, SUM(songs.plays_count) AS total_plays").
		Joins("JOIN playlist_songs ON playlist_songs.playlist_id = playlists.id").
		Joins("JOIN songs ON songs.id = playlist_songs.song_id").
		Where("playlists.privacy = ?", models.PrivacyPublic).
		Group("playlists.id").
		Having("SUM(songs.plays_count) > 0").
		Order("total_plays DESC").
		Limit(limit).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return []models.Playlist{}, nil
	}

	ids := make([]string, len(totals))
	playsByID := make(map[string]int64, len(totals))
	for i, t := range totals {
		ids[i] = t.PlaylistID
		playsByID[t.PlaylistID] = t.TotalPlays
	}

	var playlists []models.Playlist
	if err := r.db.Where("id IN ?", ids).Preload("User").Find(&playlists).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]models.Playlist, len(playlists))
	for _, p := range playlists {
		byID[p.ID] = p
	}

	ranked := make([]models.Playlist, 0, len(totals))
	for _, t := range totals {
		if p, ok := byID[t.PlaylistID]; ok {
			p.TotalPlays = playsByID[p.ID]
			ranked = append(ranked, p)
		}
	}
	return ranked, nil
}

// SearchPlaylists matches the query against the playlist name and the
// owner's display name; private playlists are never searchable.
func (r *playlistRepo) SearchPlaylists(query string) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := r.db.Model(&models.Playlist{}).
		Joins("JOIN users ON users.id = playlists.user_id").
		Where(
			"to_tsvector('english', coalesce(playlists.name, '') || ' ' || coalesce(users.display_name, '')) @@ plainto_tsquery('english', ?)",
			query,
		).
		Where("playlists.privacy = ?", models.PrivacyPublic).
		Preload("User").
		Preload("Songs").
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	return playlists, nil
}
