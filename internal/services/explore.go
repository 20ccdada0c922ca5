package services

import (
	"fmt"
	"math"
	"time"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/repository"
)

const (
	sectionLimit      = 6
	topGenreCount     = 3
	trendingWindowDay = 30
)

// ExploreService assembles the personalized explore feed. Every section is
// computed independently; missing data omits a section, it never fails the
// whole feed.
type ExploreService interface {
	BuildExplore(userID string, now time.Time) (*models.ExploreResult, error)
	RecentlyPlayed(userID string) (*models.RecentlyPlayedResult, error)
}

type exploreService struct {
	userRepo       repository.UserRepository
	songRepo       repository.SongRepository
	albumRepo      repository.AlbumRepository
	playlistRepo   repository.PlaylistRepository
	engagementRepo repository.EngagementRepository
	recentRepo     repository.RecentRepository
}

func NewExploreService(
	userRepo repository.UserRepository,
	songRepo repository.SongRepository,
	albumRepo repository.AlbumRepository,
	playlistRepo repository.PlaylistRepository,
	engagementRepo repository.EngagementRepository,
	recentRepo repository.RecentRepository,
) ExploreService {
	return &exploreService{
		userRepo:       userRepo,
		songRepo:       songRepo,
		albumRepo:      albumRepo,
		playlistRepo:   playlistRepo,
		engagementRepo: engagementRepo,
		recentRepo:     recentRepo,
	}
}

func (s *exploreService) BuildExplore(userID string, now time.Time) (*models.ExploreResult, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	result := &models.ExploreResult{}

	likedIDs, err := s.engagementRepo.LikedSongIDs(userID)
	if err != nil {
		return nil, err
	}
	dislikedIDs, err := s.engagementRepo.DislikedSongIDs(userID)
	if err != nil {
		return nil, err
	}
	excludeIDs := append(append([]string{}, likedIDs...), dislikedIDs...)

	topGenreIDs, err := s.songRepo.TopGenreIDs(userID, topGenreCount)
	if err != nil {
		return nil, err
	}

	// Made for you: only for users with at least one liked song.
	if len(likedIDs) > 0 {
		songs, err := s.songRepo.MadeForYou(topGenreIDs, excludeIDs, sectionLimit)
		if err != nil {
			return nil, err
		}
		result.MadeForYou = &models.SongSection{
			Title: fmt.Sprintf("Made for %s", user.DisplayName),
			Items: songs,
		}
	}

	recommendedToday, err := s.songRepo.RecommendedToday(excludeIDs, sectionLimit)
	if err != nil {
		return nil, err
	}
	result.RecommendedToday = &models.SongSection{
		Title: "Recommended for Today",
		Items: recommendedToday,
	}

	recommendedPlaylists, err := s.playlistRepo.PlaylistsByGenres(topGenreIDs, sectionLimit)
	if err != nil {
		return nil, err
	}
	result.RecommendedPlaylists = &models.PlaylistSection{
		Title: "Based On Your Recent Listening",
		Items: recommendedPlaylists,
	}

	recent, err := s.recentRepo.ListRecent(userID)
	if err != nil {
		return nil, err
	}
	recentSongs, recentPlaylists := partitionRecent(recent)
	if len(recentSongs) > 0 {
		result.RecentlyPlayedSongs = &models.SongSection{
			Title: "Recently Played Songs",
			Items: recentSongs,
		}
	}
	if len(recentPlaylists) > 0 {
		result.RecentlyPlayedPlaylists = &models.PlaylistSection{
			Title: "Recently Played Playlists",
			Items: recentPlaylists,
		}
	}

	popularAlbums, err := s.albumRepo.PopularAlbums(sectionLimit)
	if err != nil {
		return nil, err
	}
	result.PopularAlbums = &models.AlbumSection{
		Title: "Popular Albums",
		Items: popularAlbums,
	}

	popularArtists, err := s.userRepo.PopularArtists(sectionLimit)
	if err != nil {
		return nil, err
	}
	if len(popularArtists) > 0 {
		result.PopularArtists = &models.ArtistSection{
			Title: "Artist You May Like",
			Items: popularArtists,
		}
	}

	cutoff := now.AddDate(0, 0, -trendingWindowDay)
	trendingSongs, err := s.songRepo.TrendingSongs(cutoff, sectionLimit)
	if err != nil {
		return nil, err
	}
	result.TrendingSongs = &models.SongSection{
		Title: "Trending Songs",
		Items: trendingSongs,
	}

	trendingPlaylists, err := s.playlistRepo.TrendingPlaylists(sectionLimit)
	if err != nil {
		return nil, err
	}
	result.TrendingPlaylists = &models.PlaylistSection{
		Title: "Popular Radio",
		Items: trendingPlaylists,
	}

	totalPlaylists, err := s.playlistRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	result.TotalPlaylists = totalPlaylists

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	playedToday, err := s.recentRepo.CountSince(userID, startOfDay)
	if err != nil {
		return nil, err
	}
	result.RecentlyPlayedToday = playedToday

	topGenreToday, err := s.topGenreToday(userID, startOfDay)
	if err != nil {
		return nil, err
	}
	result.TopGenreToday = topGenreToday

	featured, err := s.albumRepo.FeaturedAlbum()
	if err != nil {
		return nil, err
	}
	result.FeaturedAlbum = featured

	return result, nil
}

// topGenreToday tallies genre tags across the songs the user played today;
// a song with N genres contributes N tallies. Returns nil when nothing was
// played today. Count ties resolve by genre name ascending.
func (s *exploreService) topGenreToday(userID string, startOfDay time.Time) (*models.GenreShare, error) {
	entries, err := s.recentRepo.SongsPlayedSince(userID, startOfDay)
	if err != nil {
		return nil, err
	}

	tally := map[string]int{}
	total := 0
	for _, entry := range entries {
		if entry.Song == nil {
			continue
		}
		for _, g := range entry.Song.Genres {
			tally[g.Name]++
			total++
		}
	}
	if total == 0 {
		return nil, nil
	}

	var topName string
	topCount := -1
	for name, count := range tally {
		if count > topCount || (count == topCount && name < topName) {
			topName = name
			topCount = count
		}
	}

	percentage := math.Round(float64(topCount)/float64(total)*10000) / 100
	return &models.GenreShare{Name: topName, Percentage: percentage}, nil
}

func (s *exploreService) RecentlyPlayed(userID string) (*models.RecentlyPlayedResult, error) {
	recent, err := s.recentRepo.ListRecent(userID)
	if err != nil {
		return nil, err
	}

	result := &models.RecentlyPlayedResult{}
	songs, playlists := partitionRecent(recent)
	if len(songs) > 0 {
		result.RecentlyPlayedSongs = &models.SongSection{
			Title: "Recently Played Songs",
			Items: songs,
		}
	}
	if len(playlists) > 0 {
		result.RecentlyPlayedPlaylists = &models.PlaylistSection{
			Title: "Recently Played Playlists",
			Items: playlists,
		}
	}
	return result, nil
}

// partitionRecent splits ring entries into songs and playlists, keeping the
// recency order of the input. Filter, not re-sort.
func partitionRecent(entries []models.RecentlyPlayed) ([]models.Song, []models.Playlist) {
	songs := []models.Song{}
	playlists := []models.Playlist{}
	for _, entry := range entries {
		switch {
		case entry.Song != nil:
			songs = append(songs, *entry.Song)
		case entry.Playlist != nil:
			playlists = append(playlists, *entry.Playlist)
		}
	}
	return songs, playlists
}
