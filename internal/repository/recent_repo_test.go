package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

func TestRecordPlayRequiresExactlyOneItem(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecentRepository(db)
	user := createTestUser(t, db, "alice")
	song := createTestSong(t, db, "one")

	err := repo.RecordPlay(user.ID, nil, nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidPlayItem)

	playlistID := "not-a-real-playlist"
	err = repo.RecordPlay(user.ID, &song.ID, &playlistID, time.Now())
	assert.ErrorIs(t, err, ErrInvalidPlayItem)
}

func TestRecordPlayKeepsAtMostSixEntries(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecentRepository(db)
	user := createTestUser(t, db, "alice")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var songs []*models.Song
	for i := 0; i < 8; i++ {
		song := createTestSong(t, db, "song-"+string(rune('a'+i)))
		songs = append(songs, song)
		require.NoError(t, repo.RecordPlay(user.ID, &song.ID, nil, base.Add(time.Duration(i)*time.Minute)))
	}

	entries, err := repo.ListRecent(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, models.RecentlyPlayedCapacity)

	// Newest first; the two oldest plays were evicted.
	assert.Equal(t, songs[7].ID, *entries[0].SongID)
	assert.Equal(t, songs[2].ID, *entries[len(entries)-1].SongID)
	for _, e := range entries {
		assert.NotEqual(t, songs[0].ID, *e.SongID)
		assert.NotEqual(t, songs[1].ID, *e.SongID)
	}
}

func TestRecordPlayReplayTouchesInsteadOfDuplicating(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecentRepository(db)
	user := createTestUser(t, db, "alice")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first := createTestSong(t, db, "first")
	second := createTestSong(t, db, "second")

	require.NoError(t, repo.RecordPlay(user.ID, &first.ID, nil, base))
	require.NoError(t, repo.RecordPlay(user.ID, &second.ID, nil, base.Add(time.Minute)))
	// Replay the first song later: it should jump to the front, not add a row.
	require.NoError(t, repo.RecordPlay(user.ID, &first.ID, nil, base.Add(2*time.Minute)))

	entries, err := repo.ListRecent(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, *entries[0].SongID)
	assert.Equal(t, second.ID, *entries[1].SongID)
}

func TestRecordPlayEvictionSparesTouchedEntry(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecentRepository(db)
	user := createTestUser(t, db, "alice")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var songs []*models.Song
	for i := 0; i < models.RecentlyPlayedCapacity; i++ {
		song := createTestSong(t, db, "ring-"+string(rune('a'+i)))
		songs = append(songs, song)
		require.NoError(t, repo.RecordPlay(user.ID, &song.ID, nil, base.Add(time.Duration(i)*time.Minute)))
	}

	// Touch the oldest entry, then overflow the ring: the second-oldest is
	// the one that must go.
	require.NoError(t, repo.RecordPlay(user.ID, &songs[0].ID, nil, base.Add(10*time.Minute)))
	newcomer := createTestSong(t, db, "newcomer")
	require.NoError(t, repo.RecordPlay(user.ID, &newcomer.ID, nil, base.Add(11*time.Minute)))

	entries, err := repo.ListRecent(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, models.RecentlyPlayedCapacity)

	ids := make(map[string]bool)
	for _, e := range entries {
		ids[*e.SongID] = true
	}
	assert.True(t, ids[songs[0].ID], "touched entry must survive eviction")
	assert.False(t, ids[songs[1].ID], "second-oldest entry must be evicted")
	assert.True(t, ids[newcomer.ID])
}

func TestRecordPlayKeepsSongAndPlaylistRingsTogether(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecentRepository(db)
	user := createTestUser(t, db, "alice")

	playlist := models.Playlist{Name: "mix", UserID: user.ID, Privacy: models.PrivacyPublic}
	require.NoError(t, db.Create(&playlist).Error)
	song := createTestSong(t, db, "tune")

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.RecordPlay(user.ID, &song.ID, nil, now))
	require.NoError(t, repo.RecordPlay(user.ID, nil, &playlist.ID, now.Add(time.Minute)))

	entries, err := repo.ListRecent(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].PlaylistID)
	assert.Equal(t, playlist.ID, *entries[0].PlaylistID)
	require.NotNil(t, entries[1].SongID)
	assert.Equal(t, song.ID, *entries[1].SongID)
}

func TestCountSinceAndSongsPlayedSince(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecentRepository(db)
	user := createTestUser(t, db, "alice")

	rock := createTestGenre(t, db, "Rock")
	oldSong := createTestSong(t, db, "yesterday", rock)
	newSong := createTestSong(t, db, "today", rock)

	playlist := models.Playlist{Name: "mix", UserID: user.ID, Privacy: models.PrivacyPublic}
	require.NoError(t, db.Create(&playlist).Error)

	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	startOfDay := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.RecordPlay(user.ID, &oldSong.ID, nil, now.Add(-24*time.Hour)))
	require.NoError(t, repo.RecordPlay(user.ID, &newSong.ID, nil, now))
	require.NoError(t, repo.RecordPlay(user.ID, nil, &playlist.ID, now))

	count, err := repo.CountSince(user.ID, startOfDay)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	songEntries, err := repo.SongsPlayedSince(user.ID, startOfDay)
	require.NoError(t, err)
	require.Len(t, songEntries, 1)
	assert.Equal(t, newSong.ID, *songEntries[0].SongID)
	require.NotNil(t, songEntries[0].Song)
	require.Len(t, songEntries[0].Song.Genres, 1)
	assert.Equal(t, "Rock", songEntries[0].Song.Genres[0].Name)
}

func TestRecentRingsAreIsolatedPerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecentRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	song := createTestSong(t, db, "shared")

	require.NoError(t, repo.RecordPlay(alice.ID, &song.ID, nil, time.Now()))

	entries, err := repo.ListRecent(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
