package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangeetx/sangeetx/internal/api"
)

type stubCatalog struct {
	songs    []api.Song
	err      error
	searched string
}

func (s *stubCatalog) Songs(context.Context) ([]api.Song, error) { return s.songs, s.err }

func (s *stubCatalog) Search(_ context.Context, q string) ([]api.Song, error) {
	s.searched = q
	return s.songs, s.err
}

var catalogSongs = []api.Song{
	{ID: "s1", Title: "Tum Hi Ho", ArtistName: "Arijit Singh", Album: "Aashiqui 2", Duration: 262, PlayCount: 1234567, IsLiked: true},
	{ID: "s2", Title: "Kesariya", ArtistName: "Arijit Singh", Duration: 268, PlayCount: 42},
}

func TestFetchSongs(t *testing.T) {
	c := &stubCatalog{songs: catalogSongs}

	got, err := fetchSongs(context.Background(), c, "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Empty(t, c.searched)

	_, err = fetchSongs(context.Background(), c, "arijit")
	require.NoError(t, err)
	assert.Equal(t, "arijit", c.searched)

	c.err = errors.New("offline")
	_, err = fetchSongs(context.Background(), c, "")
	assert.Error(t, err)
}

func TestLikedSongs(t *testing.T) {
	got := likedSongs(catalogSongs)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
	assert.Len(t, catalogSongs, 2, "input untouched")
}

func TestRenderSongs(t *testing.T) {
	var buf bytes.Buffer
	renderSongs(&buf, catalogSongs)

	out := buf.String()
	assert.Contains(t, out, "Tum Hi Ho")
	assert.Contains(t, out, "4:22")
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "2 songs")
}

func TestFormatLength(t *testing.T) {
	assert.Equal(t, "4:28", formatLength(268))
	assert.Equal(t, "0:05", formatLength(5))
	assert.Equal(t, "--:--", formatLength(0))
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := rootCmd()
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
	assert.NotEmpty(t, cmd.Version)

	songs, _, err := cmd.Find([]string{"songs"})
	require.NoError(t, err)
	assert.Equal(t, "songs", songs.Name())
}
