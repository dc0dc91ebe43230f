// Package api provides a client for the SangeetX REST API.
package api

import "time"

// Song is a read-only snapshot of a song as served by the catalog.
// Only IsLiked is ever mutated client-side, and only optimistically.
type Song struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ArtistName string `json:"artistName"`
	ArtistID   string `json:"artistId,omitempty"`
	Album      string `json:"album,omitempty"`
	Genre      string `json:"genre,omitempty"`
	Year       int    `json:"year,omitempty"`
	Duration   int    `json:"duration"` // seconds
	CoverURL   string `json:"coverUrl"`
	AudioURL   string `json:"audioUrl"`
	PlayCount  int64  `json:"playCount"`
	IsLiked    bool   `json:"isLiked"`
}

// Length returns the song duration as a time.Duration.
func (s Song) Length() time.Duration {
	return time.Duration(s.Duration) * time.Second
}

// Playable reports whether the song carries enough data to be played and
// have its progress computed.
func (s Song) Playable() bool {
	return s.AudioURL != "" && s.Duration > 0
}

// Subtitle is a single timed lyric line as returned by the subtitle endpoint.
// Times are in seconds.
type Subtitle struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Text      string  `json:"text"`
	Language  string  `json:"language"`
}
