// Package app contains the root bubbletea model: it routes input to the
// components and turns playback session events into view updates.
package app

import (
	"context"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/settings"
	"github.com/sangeetx/sangeetx/internal/ui/cover"
	"github.com/sangeetx/sangeetx/internal/ui/headerbar"
	"github.com/sangeetx/sangeetx/internal/ui/helpbindings"
	"github.com/sangeetx/sangeetx/internal/ui/karaoke"
	"github.com/sangeetx/sangeetx/internal/ui/layout"
	"github.com/sangeetx/sangeetx/internal/ui/playerbar"
	"github.com/sangeetx/sangeetx/internal/ui/prompt"
	"github.com/sangeetx/sangeetx/internal/ui/queuepanel"
	"github.com/sangeetx/sangeetx/internal/ui/songlist"
	"github.com/sangeetx/sangeetx/internal/unlock"
)

// Catalog lists and searches songs.
type Catalog interface {
	Songs(ctx context.Context) ([]api.Song, error)
	Search(ctx context.Context, query string) ([]api.Song, error)
}

// QueueSaver persists the play queue between sessions.
type QueueSaver interface {
	SaveQueue(state settings.QueueState)
}

// LockState reports whether audio still waits for the first tap.
type LockState interface {
	Unlocked() bool
	Platform() unlock.Platform
}

// FocusTarget identifies which panel has keyboard focus.
type FocusTarget int

const (
	FocusSongs FocusTarget = iota
	FocusSide
)

// Deps holds the collaborators of the app.
type Deps struct {
	Service  playback.Service
	Catalog  Catalog
	Lyrics   karaoke.Fetcher
	Settings settings.Store

	// Queue persists the queue on change. Optional.
	Queue QueueSaver
	// Gate reports the mobile lock. Optional.
	Gate LockState
	// HTTPClient fetches cover art. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Language is the lyrics language.
	Language string
}

// Model is the root application model.
type Model struct {
	svc     playback.Service
	sub     *playback.Subscription
	catalog Catalog
	store   settings.Store
	saver   QueueSaver
	gate    LockState

	songs  *songlist.Model
	queue  *queuepanel.Model
	lyrics *karaoke.Model
	cover  *cover.Model
	prompt *prompt.Model
	help   *helpbindings.Model

	showHelp    bool
	side        headerbar.Panel
	focus       FocusTarget
	displayMode playerbar.DisplayMode
	screen      layout.Screen

	snap     playback.Snapshot
	gestured bool

	// banner is the catalog or session error shown in the header.
	banner      string
	bannerRetry tea.Cmd

	Width  int
	Height int
}

// New creates the root model.
func New(deps Deps) Model {
	store := deps.Settings
	if store == nil {
		store = settings.NewMemory()
	}
	client := deps.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	language := settings.String(store, settings.KeyLanguage, deps.Language)
	synced := settings.Bool(store, settings.KeyLyricsSynced, true)

	help := helpbindings.New()
	m := Model{
		svc:     deps.Service,
		sub:     deps.Service.Subscribe(),
		catalog: deps.Catalog,
		store:   store,
		saver:   deps.Queue,
		gate:    deps.Gate,

		songs:  songlist.New(),
		queue:  queuepanel.New(),
		lyrics: karaoke.New(deps.Lyrics, language, synced),
		cover:  cover.New(client),
		prompt: prompt.New(),
		help:   &help,

		side:        headerbar.PanelLyrics,
		focus:       FocusSongs,
		displayMode: playerbar.ModeExpanded,
	}
	m.snap = m.svc.Snapshot()
	m.songs.SetRecent(settings.RecentSearches(store))
	m.queue.SetQueue(m.svc.Queue(), m.snap.Index)
	m.queue.SetModes(m.snap.Shuffle, m.snap.Repeat)
	m.applyFocus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.WatchServiceEvents(), m.loadSongs("")}
	if song := m.snap.Song; song != nil {
		m.songs.SetPlaying(song.ID)
		cmds = append(cmds, m.lyrics.SetSong(song), m.cover.SetURL(song.CoverURL))
	}
	return tea.Batch(cmds...)
}

// Focus returns the focused panel.
func (m Model) Focus() FocusTarget {
	return m.focus
}

// Side returns the panel shown next to the song list.
func (m Model) Side() headerbar.Panel {
	return m.side
}

// Banner returns the error shown in the header, if any.
func (m Model) Banner() string {
	return m.banner
}

func (m *Model) applyFocus() {
	m.songs.SetFocused(m.focus == FocusSongs)
	m.lyrics.SetFocused(m.focus == FocusSide && m.side == headerbar.PanelLyrics)
	m.queue.SetFocused(m.focus == FocusSide && m.side == headerbar.PanelQueue)
}

// resize lays the screen out again after a size or mode change.
func (m *Model) resize() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	mode := m.displayMode
	if m.Height < playerbar.Height(playerbar.ModeExpanded)+12 {
		mode = playerbar.ModeCompact
	}
	m.screen = layout.Compute(m.Width, m.Height, layout.Opts{
		HeaderHeight:    headerbar.Height,
		PlayerBarHeight: playerbar.Height(mode),
	})

	m.songs.SetSize(m.screen.Songs.Width, m.screen.Songs.Height)
	m.lyrics.SetSize(m.screen.Side.Width, m.screen.Side.Height)
	m.queue.SetSize(m.screen.Side.Width, m.screen.Side.Height)
	m.cover.SetSize(playerbar.CoverCols, playerbar.CoverRows)
	m.prompt.SetSize(m.Width, m.Height)
	m.help.SetSize(m.Width, m.Height)
}

// locked reports whether a mobile session still waits for a gesture.
func (m Model) locked() bool {
	return m.gate != nil && m.gate.Platform() == unlock.Mobile && !m.gate.Unlocked()
}

// effectiveMode is the player bar mode that fits the current screen.
func (m Model) effectiveMode() playerbar.DisplayMode {
	if m.screen.PlayerBar.Height == playerbar.Height(playerbar.ModeExpanded) {
		return playerbar.ModeExpanded
	}
	return playerbar.ModeCompact
}
