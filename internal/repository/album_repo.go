package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

var ErrAlbumNotFound = errors.New("album not found")

type AlbumRepository interface {
	CreateAlbum(album *models.Album) error
	GetAlbumByID(id string) (*models.Album, error)
	GetAllAlbums() ([]models.Album, error)
	UpdateAlbum(album *models.Album) error

	// PopularAlbums: albums ranked by summed song play count descending,
	// only albums with a positive total.
	PopularAlbums(limit int) ([]models.Album, error)

	// FeaturedAlbum: the album with the highest summed song likes, ties
	// broken by higher summed play count. Albums without songs count as
	// zero, so the result is non-nil whenever any album exists.
	FeaturedAlbum() (*models.Album, error)

	SearchAlbums(query string) ([]models.Album, error)
}

type albumRepo struct {
	db *gorm.DB
}

func NewAlbumRepository(db *gorm.DB) AlbumRepository {
	return &albumRepo{db: db}
}

type albumTotals struct {
	AlbumID    string
	TotalPlays int64
	TotalLikes int64
}

func (r *albumRepo) CreateAlbum(album *models.Album) error {
	return r.db.Create(album).Error
}

func (r *albumRepo) GetAlbumByID(id string) (*models.Album, error) {
	var album models.Album
	err := r.db.
		Preload("Artist").
		Preload("Songs").
		Preload("Songs.Genres").
		First(&album, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	r.fillTotals(&album)
	return &album, nil
}

func (r *albumRepo) GetAllAlbums() ([]models.Album, error) {
	var albums []models.Album
	err := r.db.
		Preload("Artist").
		Order("created_at DESC").
		Find(&albums).Error
	if err != nil {
		return nil, err
	}
	if albums == nil {
		albums = []models.Album{}
	}
	return albums, nil
}

func (r *albumRepo) UpdateAlbum(album *models.Album) error {
	return r.db.Save(album).Error
}

func (r *albumRepo) PopularAlbums(limit int) ([]models.Album, error) {
	var totals []albumTotals
	err := r.db.Table("songs").
		Select("songs.album_id AS album_id, SUM(songs.plays_count) AS total_plays, SUM(songs.likes) AS total_likes").
		Where("songs.album_id IS NOT NULL").
		Group("songs.album_id").
		Having("SUM(songs.plays_count) > 0").
		Order("total_plays DESC").
		Limit(limit).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return r.albumsForTotals(totals)
}

func (r *albumRepo) FeaturedAlbum() (*models.Album, error) {
	var totals []albumTotals
	err := r.db.Table("albums").
		Select("albums.id AS album_id, COALESCE(SUM(songs.plays_count), 0) AS total_plays, COALESCE(SUM(songs.likes), 0) AS total_likes").
		Joins("LEFT JOIN songs ON songs.album_id = albums.id").
		Group("albums.id").
		Order("total_likes DESC, total_plays DESC").
		Limit(1).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, nil
	}

	albums, err := r.albumsForTotals(totals)
	if err != nil {
		return nil, err
	}
	if len(albums) == 0 {
		return nil, nil
	}
	return &albums[0], nil
}

// SearchAlbums matches the query against the album title and the artist's
// display name using the store's full-text ranking.
func (r *albumRepo) SearchAlbums(query string) ([]models.Album, error) {
	var albums []models.Album
	err := r.db.Model(&models.Album{}).
		Joins("JOIN users ON users.id = albums.artist_id").
		Where(
			"to_tsvector('english', coalesce(albums.title, '') || ' ' || coalesce(users.display_name, '')) @@ plainto_tsquery('english', ?)",
			query,
		).
		Preload("Artist").
		Preload("Songs").
		Find(&albums).Error
	if err != nil {
		return nil, err
	}
	if albums == nil {
		albums = []models.Album{}
	}
	return albums, nil
}

func (r *albumRepo) albumsForTotals(totals []albumTotals) ([]models.Album, error) {
	if len(totals) == 0 {
		return []models.Album{}, nil
	}

	ids := make([]string, len(totals))
	for i, t := range totals {
		ids[i] = t.AlbumID
	}

	var albums []models.Album
	err := r.db.Where("id IN ?", ids).
		Preload("Artist").
		Preload("Songs").
		Find(&albums).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Album, len(albums))
	for _, a := range albums {
		byID[a.ID] = a
	}

	// Preserve the aggregate ranking order.
	ranked := make([]models.Album, 0, len(totals))
	for _, t := range totals {
		if a, ok := byID[t.AlbumID]; ok {
			a.TotalPlays = t.TotalPlays
			a.TotalLikes = t.TotalLikes
			ranked = append(ranked, a)
		}
	}
	return ranked, nil
}

func (r *albumRepo) fillTotals(album *models.Album) {
	for _, s := range album.Songs {
		album.TotalPlays += s.PlaysCount
		album.TotalLikes += s.Likes
	}
}
