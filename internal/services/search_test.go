package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

type fakeSearchers struct {
	songErr error
	queries []string
}

func (f *fakeSearchers) SearchSongs(query string) ([]models.Song, error) {
	f.queries = append(f.queries, query)
	if f.songErr != nil {
		return nil, f.songErr
	}
	return []models.Song{{Title: "song:" + query}}, nil
}

func (f *fakeSearchers) SearchAlbums(query string) ([]models.Album, error) {
	f.queries = append(f.queries, query)
	return []models.Album{{Title: "album:" + query}}, nil
}

func (f *fakeSearchers) SearchArtists(query string) ([]models.User, error) {
	f.queries = append(f.queries, query)
	return []models.User{{DisplayName: "artist:" + query}}, nil
}

func (f *fakeSearchers) SearchPlaylists(query string) ([]models.Playlist, error) {
	f.queries = append(f.queries, query)
	return []models.Playlist{{Name: "playlist:" + query}}, nil
}

func newFakeSearchService(f *fakeSearchers) SearchService {
	return NewSearchService(f, f, f, f)
}

func TestSearchAllFacetsByDefault(t *testing.T) {
	f := &fakeSearchers{}
	svc := newFakeSearchService(f)

	results, err := svc.Search("daft punk", "")
	require.NoError(t, err)

	assert.Len(t, results, 4)
	assert.Contains(t, results, FacetSongs)
	assert.Contains(t, results, FacetAlbums)
	assert.Contains(t, results, FacetArtists)
	assert.Contains(t, results, FacetPlaylists)
	assert.Equal(t, []string{"daft punk", "daft punk", "daft punk", "daft punk"}, f.queries)
}

func TestSearchSingleFacetOnly(t *testing.T) {
	f := &fakeSearchers{}
	svc := newFakeSearchService(f)

	results, err := svc.Search("daft punk", FacetAlbums)
	require.NoError(t, err)

	require.Len(t, results, 1)
	albums, ok := results[FacetAlbums].([]models.Album)
	require.True(t, ok)
	require.Len(t, albums, 1)
	assert.Equal(t, "album:daft punk", albums[0].Title)
	assert.Equal(t, []string{"daft punk"}, f.queries, "other facets must not be queried")
}

func TestSearchPropagatesStoreErrors(t *testing.T) {
	f := &fakeSearchers{songErr: errors.New("store down")}
	svc := newFakeSearchService(f)

	_, err := svc.Search("daft punk", "")
	assert.Error(t, err)
}

func TestSearchUnknownFacetReturnsNothing(t *testing.T) {
	f := &fakeSearchers{}
	svc := newFakeSearchService(f)

	results, err := svc.Search("daft punk", "podcasts")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, f.queries)
}
