package mpris

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/playlist"
)

// metadataFor describes song in MPRIS terms. The cover URL is passed
// through as artUrl when it is a web URL.
func metadataFor(song *api.Song) types.Metadata {
	if song == nil {
		return types.Metadata{}
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(song.ID)),
		Length:  types.Microseconds(song.Length().Microseconds()),
		Title:   song.Title,
		Album:   song.Album,
	}
	if song.ArtistName != "" {
		meta.Artist = []string{song.ArtistName}
	}
	if isWebURL(song.CoverURL) {
		meta.ArtUrl = song.CoverURL
	}
	return meta
}

func isWebURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

func playbackStatus(s playback.State) types.PlaybackStatus {
	switch s {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	case playback.StateStopped:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

func loopStatus(r playlist.RepeatMode) types.LoopStatus {
	switch r {
	case playlist.RepeatOne:
		return types.LoopStatusTrack
	case playlist.RepeatAll:
		return types.LoopStatusPlaylist
	case playlist.RepeatNone:
		return types.LoopStatusNone
	}
	return types.LoopStatusNone
}

func repeatMode(l types.LoopStatus) playlist.RepeatMode {
	switch l {
	case types.LoopStatusTrack:
		return playlist.RepeatOne
	case types.LoopStatusPlaylist:
		return playlist.RepeatAll
	case types.LoopStatusNone:
		return playlist.RepeatNone
	}
	return playlist.RepeatNone
}

// seekTarget returns the absolute position of a relative seek, clamped
// to the song.
func seekTarget(snap playback.Snapshot, offset time.Duration) time.Duration {
	return max(0, min(snap.Position+offset, snap.Duration))
}

// dispatcher is the part of the session the player adapter drives.
type dispatcher interface {
	Dispatch(a playback.Action) error
	Snapshot() playback.Snapshot
}

// setRepeat cycles the repeat mode until it reaches want. The cycle has
// three states so at most two steps are needed.
func setRepeat(d dispatcher, want playlist.RepeatMode) error {
	for range 3 {
		if d.Snapshot().Repeat == want {
			return nil
		}
		if err := d.Dispatch(playback.CycleRepeat{}); err != nil {
			return err
		}
	}
	return nil
}

func setShuffle(d dispatcher, want bool) error {
	if d.Snapshot().Shuffle == want {
		return nil
	}
	return d.Dispatch(playback.ToggleShuffle{})
}
