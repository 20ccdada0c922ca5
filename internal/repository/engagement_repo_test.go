package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

func fetchSong(t *testing.T, repo SongRepository, songID string) *models.Song {
	t.Helper()
	song, err := repo.GetSongByID(songID)
	require.NoError(t, err)
	return song
}

func TestLikeSongIsIdempotentPerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewEngagementRepository(db)
	user := createTestUser(t, db, "alice")
	song := createTestSong(t, db, "anthem")

	require.NoError(t, repo.LikeSong(user.ID, song.ID))
	assert.ErrorIs(t, repo.LikeSong(user.ID, song.ID), ErrAlreadyLiked)

	liked, err := repo.IsSongLikedByUser(user.ID, song.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestLikeRemovesUnlikeAndViceVersa(t *testing.T) {
	db := newTestDB(t)
	repo := NewEngagementRepository(db)
	user := createTestUser(t, db, "alice")
	song := createTestSong(t, db, "anthem")

	require.NoError(t, repo.UnlikeSong(user.ID, song.ID))
	require.NoError(t, repo.LikeSong(user.ID, song.ID))

	likedIDs, err := repo.LikedSongIDs(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{song.ID}, likedIDs)

	dislikedIDs, err := repo.DislikedSongIDs(user.ID)
	require.NoError(t, err)
	assert.Empty(t, dislikedIDs)

	// Flip back the other way.
	require.NoError(t, repo.UnlikeSong(user.ID, song.ID))
	assert.ErrorIs(t, repo.UnlikeSong(user.ID, song.ID), ErrAlreadyUnliked)

	likedIDs, err = repo.LikedSongIDs(user.ID)
	require.NoError(t, err)
	assert.Empty(t, likedIDs)
}

func TestLikeUnlikeRecomputesSongCounters(t *testing.T) {
	db := newTestDB(t)
	repo := NewEngagementRepository(db)
	songs := NewSongRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	song := createTestSong(t, db, "anthem")

	require.NoError(t, repo.LikeSong(alice.ID, song.ID))
	require.NoError(t, repo.LikeSong(bob.ID, song.ID))

	got := fetchSong(t, songs, song.ID)
	assert.EqualValues(t, 2, got.Likes)
	assert.EqualValues(t, 0, got.Dislikes)

	// Bob changes his mind: one like becomes one dislike.
	require.NoError(t, repo.UnlikeSong(bob.ID, song.ID))

	got = fetchSong(t, songs, song.ID)
	assert.EqualValues(t, 1, got.Likes)
	assert.EqualValues(t, 1, got.Dislikes)
}

func TestLikedSongsReturnsNewestFirstWithSong(t *testing.T) {
	db := newTestDB(t)
	repo := NewEngagementRepository(db)
	user := createTestUser(t, db, "alice")
	first := createTestSong(t, db, "first")
	second := createTestSong(t, db, "second")

	require.NoError(t, repo.LikeSong(user.ID, first.ID))
	require.NoError(t, repo.LikeSong(user.ID, second.ID))

	likes, err := repo.LikedSongs(user.ID)
	require.NoError(t, err)
	require.Len(t, likes, 2)
	for _, like := range likes {
		assert.NotEmpty(t, like.Song.Title)
	}
}

func TestFollowUserRejectsSelfAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewEngagementRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	assert.ErrorIs(t, repo.FollowUser(alice.ID, alice.ID), ErrSelfFollow)

	require.NoError(t, repo.FollowUser(alice.ID, bob.ID))
	assert.ErrorIs(t, repo.FollowUser(alice.ID, bob.ID), ErrAlreadyFollowed)

	// The reverse direction is a distinct edge.
	require.NoError(t, repo.FollowUser(bob.ID, alice.ID))
}

func TestUnfollowUserRequiresExistingFollow(t *testing.T) {
	db := newTestDB(t)
	repo := NewEngagementRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	assert.ErrorIs(t, repo.UnfollowUser(alice.ID, bob.ID), ErrNotFollowing)

	require.NoError(t, repo.FollowUser(alice.ID, bob.ID))
	require.NoError(t, repo.UnfollowUser(alice.ID, bob.ID))
	assert.ErrorIs(t, repo.UnfollowUser(alice.ID, bob.ID), ErrNotFollowing)
}

func TestFollowersAndFollowing(t *testing.T) {
	db := newTestDB(t)
	repo := NewEngagementRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, repo.FollowUser(bob.ID, alice.ID))
	require.NoError(t, repo.FollowUser(carol.ID, alice.ID))
	require.NoError(t, repo.FollowUser(alice.ID, bob.ID))

	followers, err := repo.Followers(alice.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	following, err := repo.Following(alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)
}
