package models

// Explore sections. Pointer fields with omitempty keep the original
// "absent vs. empty" distinction: a nil section never appears in the JSON
// body, an assigned section always does, even with zero items.

type SongSection struct {
	Title string `json:"title"`
	Items []Song `json:"items"`
}

type AlbumSection struct {
	Title string  `json:"title"`
	Items []Album `json:"items"`
}

type PlaylistSection struct {
	Title string     `json:"title"`
	Items []Playlist `json:"items"`
}

type ArtistSection struct {
	Title string `json:"title"`
	Items []User `json:"items"`
}

// GenreShare reports the most frequent genre among today's plays and its
// share of all genre tags tallied, as a percentage rounded to 2 decimals.
type GenreShare struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

type ExploreResult struct {
	MadeForYou              *SongSection     `json:"made_for_you,omitempty"`
	RecommendedToday        *SongSection     `json:"recommended_today,omitempty"`
	RecommendedPlaylists    *PlaylistSection `json:"recommended_playlists,omitempty"`
	RecentlyPlayedSongs     *SongSection     `json:"recently_played_songs,omitempty"`
	RecentlyPlayedPlaylists *PlaylistSection `json:"recently_played_playlists,omitempty"`
	PopularAlbums           *AlbumSection    `json:"popular_albums,omitempty"`
	PopularArtists          *ArtistSection   `json:"popular_artists,omitempty"`
	TrendingSongs           *SongSection     `json:"trending_songs,omitempty"`
	TrendingPlaylists       *PlaylistSection `json:"trending_playlists,omitempty"`
	TotalPlaylists          int64            `json:"total_playlists"`
	RecentlyPlayedToday     int64            `json:"recently_played_today"`
	TopGenreToday           *GenreShare      `json:"top_genre_today,omitempty"`
	FeaturedAlbum           *Album           `json:"featured_album,omitempty"`
}

type RecentlyPlayedResult struct {
	RecentlyPlayedSongs     *SongSection     `json:"recently_played_songs,omitempty"`
	RecentlyPlayedPlaylists *PlaylistSection `json:"recently_played_playlists,omitempty"`
}
