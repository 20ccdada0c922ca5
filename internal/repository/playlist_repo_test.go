package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

func createTestPlaylist(t *testing.T, repo PlaylistRepository, userID, name, privacy string) *models.Playlist {
	t.Helper()

	playlist := &models.Playlist{Name: name, UserID: userID, Privacy: privacy}
	require.NoError(t, repo.CreatePlaylist(playlist))
	return playlist
}

func TestToggleSongAddsThenRemoves(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlaylistRepository(db)
	user := createTestUser(t, db, "alice")
	playlist := createTestPlaylist(t, repo, user.ID, "mix", models.PrivacyPublic)
	song := createTestSong(t, db, "tune")

	added, err := repo.ToggleSong(playlist, song)
	require.NoError(t, err)
	assert.True(t, added)

	got, err := repo.GetPlaylistByID(playlist.ID)
	require.NoError(t, err)
	assert.Len(t, got.Songs, 1)
	assert.Equal(t, 1, got.TotalSongs)

	added, err = repo.ToggleSong(playlist, song)
	require.NoError(t, err)
	assert.False(t, added)

	got, err = repo.GetPlaylistByID(playlist.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Songs)
	assert.Equal(t, 0, got.TotalSongs)
}

func TestPlaylistsByGenresSkipsPrivateAndOffGenre(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlaylistRepository(db)
	user := createTestUser(t, db, "alice")

	rock := createTestGenre(t, db, "Rock")
	jazz := createTestGenre(t, db, "Jazz")
	rockSong := createTestSong(t, db, "rocker", rock)
	jazzSong := createTestSong(t, db, "jazzer", jazz)

	publicRock := createTestPlaylist(t, repo, user.ID, "public rock", models.PrivacyPublic)
	privateRock := createTestPlaylist(t, repo, user.ID, "private rock", models.PrivacyPrivate)
	publicJazz := createTestPlaylist(t, repo, user.ID, "public jazz", models.PrivacyPublic)

	_, err := repo.ToggleSong(publicRock, rockSong)
	require.NoError(t, err)
	_, err = repo.ToggleSong(privateRock, rockSong)
	require.NoError(t, err)
	_, err = repo.ToggleSong(publicJazz, jazzSong)
	require.NoError(t, err)

	playlists, err := repo.PlaylistsByGenres([]string{rock.ID}, 6)
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Equal(t, publicRock.ID, playlists[0].ID)

	playlists, err = repo.PlaylistsByGenres(nil, 6)
	require.NoError(t, err)
	assert.Empty(t, playlists)
}

func TestTrendingPlaylistsRanksBySummedPlays(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlaylistRepository(db)
	user := createTestUser(t, db, "alice")

	hot := createTestSong(t, db, "hot")
	mild := createTestSong(t, db, "mild")
	cold := createTestSong(t, db, "cold")
	require.NoError(t, db.Model(hot).UpdateColumn("plays_count", 100).Error)
	require.NoError(t, db.Model(mild).UpdateColumn("plays_count", 10).Error)

	top := createTestPlaylist(t, repo, user.ID, "top", models.PrivacyPublic)
	mid := createTestPlaylist(t, repo, user.ID, "mid", models.PrivacyPublic)
	quiet := createTestPlaylist(t, repo, user.ID, "quiet", models.PrivacyPublic)
	hidden := createTestPlaylist(t, repo, user.ID, "hidden", models.PrivacyPrivate)

	for playlist, song := range map[*models.Playlist]*models.Song{
		top: hot, mid: mild, quiet: cold, hidden: hot,
	} {
		_, err := repo.ToggleSong(playlist, song)
		require.NoError(t, err)
	}

	playlists, err := repo.TrendingPlaylists(6)
	require.NoError(t, err)
	require.Len(t, playlists, 2, "private and zero-play playlists are excluded")
	assert.Equal(t, top.ID, playlists[0].ID)
	assert.EqualValues(t, 100, playlists[0].TotalPlays)
	assert.Equal(t, mid.ID, playlists[1].ID)
}

func TestCountByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlaylistRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	createTestPlaylist(t, repo, alice.ID, "one", models.PrivacyPublic)
	createTestPlaylist(t, repo, alice.ID, "two", models.PrivacyPrivate)
	createTestPlaylist(t, repo, bob.ID, "other", models.PrivacyPublic)

	count, err := repo.CountByUser(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestDeletePlaylistClearsMembership(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlaylistRepository(db)
	user := createTestUser(t, db, "alice")
	playlist := createTestPlaylist(t, repo, user.ID, "doomed", models.PrivacyPublic)
	song := createTestSong(t, db, "survivor")

	_, err := repo.ToggleSong(playlist, song)
	require.NoError(t, err)

	require.NoError(t, repo.DeletePlaylist(playlist))

	_, err = repo.GetPlaylistByID(playlist.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	var memberships int64
	require.NoError(t, db.Table("playlist_songs").Where("playlist_id = ?", playlist.ID).Count(&memberships).Error)
	assert.Zero(t, memberships)

	// The song itself survives.
	var count int64
	require.NoError(t, db.Model(&models.Song{}).Where("id = ?", song.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
