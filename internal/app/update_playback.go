package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/errmsg"
	"github.com/sangeetx/sangeetx/internal/player"
)

// handlePlaybackMsg routes playback session events.
func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	if _, closed := msg.(ServiceClosedMsg); closed {
		return m, nil
	}
	m.snap = m.svc.Snapshot()

	cmds := []tea.Cmd{m.WatchServiceEvents()}
	switch msg := msg.(type) {
	case ServiceTrackChangedMsg:
		cmds = append(cmds, m.handleTrackChanged(msg))
	case ServicePositionMsg:
		cmds = append(cmds, m.lyrics.SetPosition(msg.Position))
	case ServiceQueueChangedMsg:
		m.queue.SetQueue(msg.Songs, msg.Index)
		m.SaveQueueState()
	case ServiceModeChangedMsg:
		m.queue.SetModes(msg.Shuffle, msg.Repeat)
		m.SaveQueueState()
	case ServiceLikeChangedMsg:
		m.songs.SetLiked(msg.SongID, msg.Liked)
	case ServicePromptMsg:
		m.handlePrompt(msg.Visible)
	case ServiceErrorMsg:
		m.handleServiceError(msg)
	case ServiceStateChangedMsg, ServiceVolumeMsg:
		// Rendered from the snapshot.
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleTrackChanged(msg ServiceTrackChangedMsg) tea.Cmd {
	m.queue.SetCurrent(msg.Index)
	m.SaveQueueState()

	song := msg.Current
	if song == nil {
		m.songs.SetPlaying("")
		return tea.Batch(m.lyrics.SetSong(nil), m.cover.SetURL(""))
	}
	m.songs.SetPlaying(song.ID)
	return tea.Batch(m.lyrics.SetSong(song), m.cover.SetURL(song.CoverURL))
}

func (m *Model) handlePrompt(visible bool) {
	if !visible {
		m.prompt.Hide()
		return
	}
	m.prompt.Show(songLabel(m.snap.Song))
}

// handleServiceError shows failures that the player bar does not. Load and
// play failures of the current song are rendered from the snapshot.
func (m *Model) handleServiceError(msg ServiceErrorMsg) {
	switch msg.Operation {
	case "like":
		m.setBanner(errmsg.Format(errmsg.OpLikeToggle, msg.Err), nil)
	case "seek":
		m.setBanner(errmsg.Format(errmsg.OpPlaybackSeek, msg.Err), nil)
	}
}

// playerError returns the user-facing text of the current song's failure.
func (m Model) playerError() string {
	err := m.snap.Err
	if err == nil {
		return ""
	}
	if errors.Is(err, player.ErrPlaybackBlocked) {
		return errmsg.Format(errmsg.OpPlaybackStart, err)
	}
	return errmsg.Format(errmsg.OpPlaybackLoad, err)
}

func songLabel(song *api.Song) string {
	if song == nil {
		return ""
	}
	if song.ArtistName == "" {
		return song.Title
	}
	return song.Title + " · " + song.ArtistName
}
