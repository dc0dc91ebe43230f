//go:build linux

// Package mpris exposes the playback session over MPRIS D-Bus so media
// keys and desktop widgets can drive it.
package mpris

import (
	"time"

	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	log "github.com/sirupsen/logrus"

	"github.com/sangeetx/sangeetx/internal/playback"
)

// Adapter connects a playback session to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("sangeetx", &rootAdapter{}, &playerAdapter{session: service}),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			log.WithError(err).Warn("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

// Quit is not supported; the terminal owns the process lifecycle.
func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) {
	return "SangeetX", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// loop status and shuffle extensions.
type playerAdapter struct {
	session playback.Service
}

func (p *playerAdapter) Next() error      { return p.session.Dispatch(playback.Next{}) }
func (p *playerAdapter) Previous() error  { return p.session.Dispatch(playback.Previous{}) }
func (p *playerAdapter) Pause() error     { return p.session.Dispatch(playback.Pause{}) }
func (p *playerAdapter) PlayPause() error { return p.session.Dispatch(playback.PlayPause{}) }
func (p *playerAdapter) Stop() error      { return p.session.Dispatch(playback.Stop{}) }
func (p *playerAdapter) Play() error      { return p.session.Dispatch(playback.Play{}) }

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	snap := p.session.Snapshot()
	if snap.Song == nil {
		return nil
	}
	pos := seekTarget(snap, time.Duration(offset)*time.Microsecond)
	return p.session.Dispatch(playback.SeekTo{Position: pos})
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.session.Dispatch(playback.SeekTo{Position: time.Duration(position) * time.Microsecond})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.session.Snapshot().State), nil
}

func (p *playerAdapter) Rate() (float64, error)   { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadataFor(p.session.Snapshot().Song), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	snap := p.session.Snapshot()
	if snap.Muted {
		return 0, nil
	}
	return snap.Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	return p.session.Dispatch(playback.SetVolume{Level: v})
}

func (p *playerAdapter) Position() (int64, error) {
	return p.session.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

// Next and previous are no-ops on a queue of one song.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.session.Snapshot().Length > 1, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.session.Snapshot().Length > 1, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.session.Snapshot().Song != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error)   { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error)    { return true, nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	return loopStatus(p.session.Snapshot().Repeat), nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	return setRepeat(p.session, repeatMode(status))
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.session.Snapshot().Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	return setShuffle(p.session, shuffle)
}
