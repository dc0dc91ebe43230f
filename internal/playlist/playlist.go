// Package playlist holds the ordered song list and the index math used to
// navigate it.
package playlist

import "github.com/sangeetx/sangeetx/internal/api"

// Playlist holds an ordered collection of songs.
type Playlist struct {
	songs []api.Song
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		songs: make([]api.Song, 0),
	}
}

// Add appends songs to the playlist.
func (p *Playlist) Add(songs ...api.Song) {
	p.songs = append(p.songs, songs...)
}

// Remove removes the song at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.songs) {
		return false
	}
	p.songs = append(p.songs[:index], p.songs[index+1:]...)
	return true
}

// Clear removes all songs from the playlist.
func (p *Playlist) Clear() {
	p.songs = p.songs[:0]
}

// Songs returns a copy of all songs.
func (p *Playlist) Songs() []api.Song {
	result := make([]api.Song, len(p.songs))
	copy(result, p.songs)
	return result
}

// Song returns the song at the given index, or nil if out of bounds.
func (p *Playlist) Song(index int) *api.Song {
	if index < 0 || index >= len(p.songs) {
		return nil
	}
	return &p.songs[index]
}

// Len returns the number of songs.
func (p *Playlist) Len() int {
	return len(p.songs)
}

// SetLiked updates the liked flag of every entry for songID and reports
// whether any matched.
func (p *Playlist) SetLiked(songID string, liked bool) bool {
	found := false
	for i := range p.songs {
		if p.songs[i].ID == songID {
			p.songs[i].IsLiked = liked
			found = true
		}
	}
	return found
}
