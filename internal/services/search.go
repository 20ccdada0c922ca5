package services

import (
	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

// Search facets. An empty facet searches all of them.
const (
	FacetSongs     = "songs"
	FacetAlbums    = "albums"
	FacetArtists   = "artists"
	FacetPlaylists = "playlists"
)

type SongSearcher interface {
	SearchSongs(query string) ([]models.Song, error)
}

type AlbumSearcher interface {
	SearchAlbums(query string) ([]models.Album, error)
}

type ArtistSearcher interface {
	SearchArtists(query string) ([]models.User, error)
}

type PlaylistSearcher interface {
	SearchPlaylists(query string) ([]models.Playlist, error)
}

// SearchService fans a free-text query out across the requested entity
// types and returns a map from facet name to its result list. Relevance
// ranking is delegated to the store; this layer owns which fields feed it
// and which entities are filtered out beforehand.
type SearchService interface {
	Search(query string, facet string) (map[string]interface{}, error)
}

type searchService struct {
	songs     SongSearcher
	albums    AlbumSearcher
	artists   ArtistSearcher
	playlists PlaylistSearcher
}

func NewSearchService(
	songs SongSearcher,
	albums AlbumSearcher,
	artists ArtistSearcher,
	playlists PlaylistSearcher,
) SearchService {
	return &searchService{
		songs:     songs,
		albums:    albums,
		artists:   artists,
		playlists: playlists,
	}
}

func (s *searchService) Search(query string, facet string) (map[string]interface{}, error) {
	results := map[string]interface{}{}

	if facet == "" || facet == FacetSongs {
		songs, err := s.songs.SearchSongs(query)
		if err != nil {
			return nil, err
		}
		results[FacetSongs] = songs
	}

	if facet == "" || facet == FacetAlbums {
		albums, err := s.albums.SearchAlbums(query)
		if err != nil {
			return nil, err
		}
		results[FacetAlbums] = albums
	}

	if facet == "" || facet == FacetArtists {
		artists, err := s.artists.SearchArtists(query)
		if err != nil {
			return nil, err
		}
		results[FacetArtists] = artists
	}

	if facet == "" || facet == FacetPlaylists {
		playlists, err := s.playlists.SearchPlaylists(query)
		if err != nil {
			return nil, err
		}
		results[FacetPlaylists] = playlists
	}

	return results, nil
}
