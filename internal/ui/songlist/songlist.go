// Package songlist provides the catalog panel: the song list, the search
// box and recent searches.
package songlist

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/ui"
	"github.com/sangeetx/sangeetx/internal/ui/action"
	"github.com/sangeetx/sangeetx/internal/ui/list"
	"github.com/sangeetx/sangeetx/internal/ui/popup"
)

var _ popup.Popup = (*Model)(nil)

// Model is the song list panel.
type Model struct {
	ui.Base
	list   list.Model[api.Song]
	search textinput.Model

	searching bool
	query     string
	recent    []string
	recentIdx int

	loading bool
	err     string
	playing string // ID of the current song
}

// New creates an empty song list.
func New() *Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search songs, artists, albums"
	ti.CharLimit = 100

	m := &Model{
		list:      list.New[api.Song]("songs"),
		search:    ti,
		loading:   true,
		recentIdx: -1,
	}
	m.list.SetChrome(ui.PanelTop, 1)
	return m
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.search.Width = max(width-6, 1)
	m.list.SetSize(width, height)
}

// SetFocused sets whether the panel has focus.
func (m *Model) SetFocused(focused bool) {
	m.Base.SetFocused(focused)
	m.list.SetFocused(focused)
}

// SetPlaying marks the song with the given ID as the current one.
func (m *Model) SetPlaying(songID string) {
	m.playing = songID
}

// SetRecent sets the recent searches offered while searching, most recent
// first.
func (m *Model) SetRecent(recent []string) {
	m.recent = recent
}

// SetLiked updates the liked flag of a listed song.
func (m *Model) SetLiked(songID string, liked bool) {
	items := m.list.Items()
	for i := range items {
		if items[i].ID == songID {
			items[i].IsLiked = liked
		}
	}
}

// Songs returns the listed songs.
func (m *Model) Songs() []api.Song {
	return m.list.Items()
}

// SelectedIndex returns the cursor position.
func (m *Model) SelectedIndex() int {
	return m.list.SelectedIndex()
}

// Searching reports whether the search box has the keyboard.
func (m *Model) Searching() bool {
	return m.searching
}

// Query returns the query the list shows results for.
func (m *Model) Query() string {
	return m.query
}

// StartSearch opens the search box.
func (m *Model) StartSearch() tea.Cmd {
	m.searching = true
	m.recentIdx = -1
	m.search.SetValue(m.query)
	m.search.CursorEnd()
	m.list.SetChrome(ui.PanelTop+1, 1)
	m.list.SetSize(m.Width(), m.Height())
	return m.search.Focus()
}

func (m *Model) stopSearch() {
	m.searching = false
	m.search.Blur()
	m.list.SetChrome(ui.PanelTop, 1)
	m.list.SetSize(m.Width(), m.Height())
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.handleLoaded(msg)
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m, m.handleSearchKey(msg)
		}
	}

	res := m.list.Update(msg)
	switch res.Action {
	case list.ActionEnter, list.ActionClick:
		return m, m.play(res.Index)
	case list.ActionAdd:
		song := m.list.Items()[res.Index]
		return m, emit(playback.Enqueue{Songs: []api.Song{song}})
	case list.ActionNone:
	}
	return m, nil
}

func (m *Model) handleLoaded(msg LoadedMsg) {
	if msg.Query != m.query {
		return
	}
	m.loading = false
	if msg.Err != nil {
		m.err = msg.Err.Error()
		return
	}
	m.err = ""
	m.list.SetItems(msg.Songs)
	m.list.Select(0)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type { //nolint:exhaustive // keys with search box meaning
	case tea.KeyEnter:
		query := m.search.Value()
		m.stopSearch()
		m.query = query
		m.loading = true
		return emit(Search{Query: query})
	case tea.KeyEsc:
		m.stopSearch()
		return nil
	case tea.KeyUp:
		m.cycleRecent(1)
		return nil
	case tea.KeyDown:
		m.cycleRecent(-1)
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

// cycleRecent walks the recent searches; up goes further back.
func (m *Model) cycleRecent(delta int) {
	if len(m.recent) == 0 {
		return
	}
	m.recentIdx = max(-1, min(m.recentIdx+delta, len(m.recent)-1))
	if m.recentIdx < 0 {
		m.search.SetValue("")
		return
	}
	m.search.SetValue(m.recent[m.recentIdx])
	m.search.CursorEnd()
}

// play starts the listed songs from index i.
func (m *Model) play(i int) tea.Cmd {
	songs := m.list.Items()
	if i < 0 || i >= len(songs) {
		return nil
	}
	queue := make([]api.Song, len(songs))
	copy(queue, songs)
	return emit(playback.SelectSong{Songs: queue, Index: i})
}

func emit(a action.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg(a) }
}
