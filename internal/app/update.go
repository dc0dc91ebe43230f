package app

import (
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/sangeetx/sangeetx/internal/errmsg"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/settings"
	"github.com/sangeetx/sangeetx/internal/ui/action"
	"github.com/sangeetx/sangeetx/internal/ui/cover"
	"github.com/sangeetx/sangeetx/internal/ui/helpbindings"
	"github.com/sangeetx/sangeetx/internal/ui/songlist"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		return m, nil

	case PlaybackMessage:
		return m.handlePlaybackMsg(msg)

	case action.Msg:
		return m.handleAction(msg)

	case songlist.LoadedMsg:
		return m.handleSongsLoaded(msg)

	case cover.LoadedMsg:
		return m, m.cover.Update(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	// Lyrics fetch results and animation frames.
	_, cmd := m.lyrics.Update(msg)
	return m, cmd
}

// handleAction applies an action emitted by a component.
func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	log.WithFields(log.Fields{"source": msg.Source, "action": msg.Action.ActionType()}).Debug("ui action")

	switch a := msg.Action.(type) {
	case songlist.Search:
		return m, m.search(a.Query)
	case helpbindings.Close:
		m.showHelp = false
		return m, nil
	case playback.ConfirmUnlock, playback.DismissUnlock:
		m.prompt.Hide()
		m.dispatch(a.(playback.Action))
		return m, nil
	case playback.Action:
		m.dispatch(a)
		return m, nil
	}
	return m, nil
}

// dispatch sends a to the session. Invalid requests are logged; playback
// failures come back as session events.
func (m *Model) dispatch(a playback.Action) {
	if err := m.svc.Dispatch(a); err != nil {
		log.WithError(err).WithField("action", a.ActionType()).Warn("dispatch rejected")
	}
	m.snap = m.svc.Snapshot()
}

// search runs a catalog search and remembers the query.
func (m *Model) search(query string) tea.Cmd {
	if query != "" {
		if err := settings.AddRecentSearch(m.store, query); err != nil {
			log.WithError(err).Warn("save recent search")
		}
		m.songs.SetRecent(settings.RecentSearches(m.store))
	}
	return m.loadSongs(query)
}

func (m Model) handleSongsLoaded(msg songlist.LoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Query != m.songs.Query() {
		return m, nil
	}
	if msg.Err != nil {
		op := errmsg.OpSongsLoad
		if msg.Query != "" {
			op = errmsg.OpSongSearch
		}
		log.WithError(msg.Err).WithField("query", msg.Query).Warn("catalog request failed")
		m.setBanner(errmsg.Format(op, msg.Err), m.loadSongs(msg.Query))
	} else {
		m.clearBanner()
	}
	_, cmd := m.songs.Update(msg)
	return m, cmd
}

func (m *Model) setBanner(text string, retry tea.Cmd) {
	m.banner = text
	m.bannerRetry = retry
}

func (m *Model) clearBanner() {
	m.banner = ""
	m.bannerRetry = nil
}

// retry re-runs whatever failed: the current song first, then the banner.
func (m *Model) retry() tea.Cmd {
	if m.snap.Err != nil {
		m.dispatch(playback.Retry{})
		return nil
	}
	if m.banner == "" {
		return nil
	}
	cmd := m.bannerRetry
	m.clearBanner()
	return cmd
}

// helpContexts lists the binding contexts the help popup shows.
func helpContexts() []string {
	return []string{"global", "playback", "songs", "lyrics", "prompt"}
}
