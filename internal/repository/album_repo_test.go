package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

func addAlbumSong(t *testing.T, db *gorm.DB, album *models.Album, title string, plays, likes int64) *models.Song {
	t.Helper()

	song := &models.Song{
		Title:      title,
		AudioURL:   "https://cdn.example.com/" + title + ".mp3",
		AlbumID:    &album.ID,
		PlaysCount: plays,
		Likes:      likes,
	}
	require.NoError(t, db.Create(song).Error)
	return song
}

func TestPopularAlbumsRanksBySummedPlays(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumRepository(db)
	artist := createTestUser(t, db, "artist")

	hot := models.Album{Title: "Hot", ArtistID: artist.ID}
	warm := models.Album{Title: "Warm", ArtistID: artist.ID}
	silent := models.Album{Title: "Silent", ArtistID: artist.ID}
	require.NoError(t, db.Create(&hot).Error)
	require.NoError(t, db.Create(&warm).Error)
	require.NoError(t, db.Create(&silent).Error)

	addAlbumSong(t, db, &hot, "h1", 30, 0)
	addAlbumSong(t, db, &hot, "h2", 20, 0)
	addAlbumSong(t, db, &warm, "w1", 10, 0)
	addAlbumSong(t, db, &silent, "s1", 0, 0)

	albums, err := repo.PopularAlbums(6)
	require.NoError(t, err)
	require.Len(t, albums, 2, "albums with zero plays are not popular")
	assert.Equal(t, hot.ID, albums[0].ID)
	assert.EqualValues(t, 50, albums[0].TotalPlays)
	assert.Equal(t, warm.ID, albums[1].ID)
}

func TestFeaturedAlbumTieBrokenByPlays(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumRepository(db)
	artist := createTestUser(t, db, "artist")

	first := models.Album{Title: "First", ArtistID: artist.ID}
	second := models.Album{Title: "Second", ArtistID: artist.ID}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	// Equal likes; the second album wins on plays.
	addAlbumSong(t, db, &first, "f1", 5, 10)
	addAlbumSong(t, db, &second, "s1", 50, 10)

	featured, err := repo.FeaturedAlbum()
	require.NoError(t, err)
	require.NotNil(t, featured)
	assert.Equal(t, second.ID, featured.ID)
	assert.EqualValues(t, 10, featured.TotalLikes)
	assert.EqualValues(t, 50, featured.TotalPlays)
}

func TestFeaturedAlbumPresentEvenWithoutSongs(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumRepository(db)

	featured, err := repo.FeaturedAlbum()
	require.NoError(t, err)
	assert.Nil(t, featured, "no albums at all means no featured album")

	artist := createTestUser(t, db, "artist")
	empty := models.Album{Title: "Empty", ArtistID: artist.ID}
	require.NoError(t, db.Create(&empty).Error)

	featured, err = repo.FeaturedAlbum()
	require.NoError(t, err)
	require.NotNil(t, featured)
	assert.Equal(t, empty.ID, featured.ID)
	assert.EqualValues(t, 0, featured.TotalLikes)
}

func TestGetAlbumByIDFillsTotals(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumRepository(db)
	artist := createTestUser(t, db, "artist")

	album := models.Album{Title: "Totals", ArtistID: artist.ID}
	require.NoError(t, db.Create(&album).Error)
	addAlbumSong(t, db, &album, "t1", 7, 2)
	addAlbumSong(t, db, &album, "t2", 3, 1)

	got, err := repo.GetAlbumByID(album.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 10, got.TotalPlays)
	assert.EqualValues(t, 3, got.TotalLikes)

	_, err = repo.GetAlbumByID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrAlbumNotFound)
}
