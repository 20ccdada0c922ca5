package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

func TestFindUserByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	created := createTestUser(t, db, "alice")

	user, err := repo.FindUserByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	// Missing email is not an error, just a nil user.
	user, err = repo.FindUserByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindUserByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindUserByID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, "alice")

	require.NoError(t, repo.SetRole(user.ID, models.RoleArtist))

	got, err := repo.FindUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleArtist, got.Role)
}

func TestPopularArtistsRanksBySummedPlays(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	star := createTestUser(t, db, "star")
	rising := createTestUser(t, db, "rising")
	unheard := createTestUser(t, db, "unheard")

	starAlbum := models.Album{Title: "Star", ArtistID: star.ID}
	risingAlbum := models.Album{Title: "Rising", ArtistID: rising.ID}
	unheardAlbum := models.Album{Title: "Unheard", ArtistID: unheard.ID}
	for _, a := range []*models.Album{&starAlbum, &risingAlbum, &unheardAlbum} {
		require.NoError(t, db.Create(a).Error)
	}

	addAlbumSong(t, db, &starAlbum, "s1", 40, 0)
	addAlbumSong(t, db, &starAlbum, "s2", 60, 0)
	addAlbumSong(t, db, &risingAlbum, "r1", 25, 0)
	addAlbumSong(t, db, &unheardAlbum, "u1", 0, 0)

	artists, err := repo.PopularArtists(6)
	require.NoError(t, err)
	require.Len(t, artists, 2, "artists with zero total plays are excluded")
	assert.Equal(t, star.ID, artists[0].ID)
	assert.EqualValues(t, 100, artists[0].TotalPlays)
	assert.Equal(t, rising.ID, artists[1].ID)
}

func TestArtistRequestLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, "alice")

	pending, err := repo.HasPendingArtistRequest(user.ID)
	require.NoError(t, err)
	assert.False(t, pending)

	req := &models.ArtistRequest{UserID: user.ID, Status: models.ArtistRequestPending}
	require.NoError(t, repo.CreateArtistRequest(req))

	pending, err = repo.HasPendingArtistRequest(user.ID)
	require.NoError(t, err)
	assert.True(t, pending)

	req.Status = models.ArtistRequestApproved
	require.NoError(t, repo.UpdateArtistRequest(req))

	pending, err = repo.HasPendingArtistRequest(user.ID)
	require.NoError(t, err)
	assert.False(t, pending)

	got, err := repo.FindArtistRequestByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ArtistRequestApproved, got.Status)
}

func TestPasswordHashing(t *testing.T) {
	repo := NewUserRepository(nil)

	hash, err := repo.HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, repo.VerifyPassword(hash, "s3cret"))
	assert.Error(t, repo.VerifyPassword(hash, "wrong"))
}
