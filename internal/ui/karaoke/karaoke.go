// Package karaoke provides the lyrics panel: the active line follows
// playback with word-level highlighting, and the view glides towards it.
package karaoke

import (
	"context"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	log "github.com/sirupsen/logrus"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/keymap"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/subtitle"
	"github.com/sangeetx/sangeetx/internal/ui"
	"github.com/sangeetx/sangeetx/internal/ui/popup"
	"github.com/sangeetx/sangeetx/internal/ui/render"
)

var _ popup.Popup = (*Model)(nil)

// State represents the loading state of the panel.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateNotFound
)

const (
	fetchTimeout = 10 * time.Second
	frameRate    = 60
	settleDelta  = 0.01

	// chrome is the title row plus the footer row.
	chrome = 2
)

// Fetcher returns the lyrics of a song. A nil result means none were found.
type Fetcher interface {
	Fetch(ctx context.Context, song api.Song, language string) (*subtitle.Lyrics, error)
}

// Model holds the state of the lyrics panel.
type Model struct {
	ui.Base
	fetcher  Fetcher
	language string

	song     *api.Song
	lyrics   *subtitle.Lyrics
	state    State
	position time.Duration
	active   int

	// synced makes the view follow the active line; off, it scrolls freely
	// and cursor marks the line enter seeks to.
	synced bool
	cursor int

	heights   []int
	target    float64
	offset    float64
	velocity  float64
	spring    harmonica.Spring
	animating bool
}

// New creates a lyrics panel.
func New(fetcher Fetcher, language string, synced bool) *Model {
	return &Model{
		fetcher:  fetcher,
		language: language,
		synced:   synced,
		active:   -1,
		spring:   harmonica.NewSpring(harmonica.FPS(frameRate), 6.0, 1.0),
	}
}

// SetLanguage changes the subtitle language used for the next song.
func (m *Model) SetLanguage(language string) {
	m.language = language
}

// SetSong clears the panel and returns the command fetching the lyrics
// of song.
func (m *Model) SetSong(song *api.Song) tea.Cmd {
	m.song = song
	m.lyrics = nil
	m.heights = nil
	m.active = -1
	m.cursor = 0
	m.position = 0
	m.offset, m.velocity, m.target = 0, 0, 0
	if song == nil {
		m.state = StateIdle
		return nil
	}
	m.state = StateLoading
	return m.fetchCmd(*song)
}

func (m *Model) fetchCmd(song api.Song) tea.Cmd {
	fetcher, language := m.fetcher, m.language
	if fetcher == nil {
		return func() tea.Msg { return FetchedMsg{SongID: song.ID} }
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		lyrics, err := fetcher.Fetch(ctx, song, language)
		return FetchedMsg{SongID: song.ID, Lyrics: lyrics, Err: err}
	}
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.measure()
	m.offset = m.clampOffset(m.offset)
	if m.synced {
		m.retarget()
		m.offset = m.target
	}
}

// SetPosition updates the playback position. The view retargets only
// when the active line changes.
func (m *Model) SetPosition(pos time.Duration) tea.Cmd {
	m.position = pos
	active := m.lyrics.ActiveIndex(pos)
	if active == m.active {
		return nil
	}
	m.active = active
	if !m.synced || active < 0 {
		return nil
	}
	m.retarget()
	return m.animate()
}

// State returns the loading state.
func (m *Model) State() State { return m.state }

// Active returns the index of the active line, or -1.
func (m *Model) Active() int { return m.active }

// Synced reports whether the view follows playback.
func (m *Model) Synced() bool { return m.synced }

// Offset returns the current scroll offset in rows.
func (m *Model) Offset() float64 { return m.offset }

// Target returns the scroll offset the view is moving towards.
func (m *Model) Target() float64 { return m.target }

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case FetchedMsg:
		return m, m.handleFetched(msg)
	case frameMsg:
		return m, m.step()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleFetched(msg FetchedMsg) tea.Cmd {
	if m.song == nil || msg.SongID != m.song.ID {
		return nil
	}
	if msg.Err != nil {
		log.WithError(msg.Err).WithField("song", msg.SongID).Debug("lyrics lookup incomplete")
	}
	if msg.Lyrics.Empty() {
		m.state = StateNotFound
		return nil
	}
	m.lyrics = msg.Lyrics
	m.state = StateLoaded
	m.measure()
	m.active = m.lyrics.ActiveIndex(m.position)
	m.retarget()
	m.offset = m.target
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch keymap.Lookup("lyrics", msg.String()) { //nolint:exhaustive // panel keys only
	case keymap.ActionMoveDown:
		m.moveCursor(1)
	case keymap.ActionMoveUp:
		m.moveCursor(-1)
	case keymap.ActionToggleSynced:
		return m.SetSynced(!m.synced)
	case keymap.ActionSelect:
		return m.seekTo(m.selectedLine())
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button { //nolint:exhaustive // buttons the panel reacts to
	case tea.MouseButtonWheelUp:
		m.scrollBy(-1)
	case tea.MouseButtonWheelDown:
		m.scrollBy(1)
	case tea.MouseButtonLeft:
		return m.seekTo(m.LineAtRow(msg.Y))
	}
	return nil
}

// SetSynced turns playback following on or off. Turning it on jumps back
// to the active line.
func (m *Model) SetSynced(on bool) tea.Cmd {
	m.synced = on
	if !on {
		m.cursor = max(m.active, m.firstVisibleLine())
		return nil
	}
	m.retarget()
	return m.animate()
}

func (m *Model) moveCursor(delta int) {
	if m.lyrics.Empty() {
		return
	}
	if m.synced {
		m.synced = false
		m.cursor = max(m.active, m.firstVisibleLine())
	}
	m.cursor = max(0, min(m.cursor+delta, len(m.lyrics.Lines)-1))

	top := m.rowOf(m.cursor)
	bottom := top + m.heights[m.cursor]
	viewport := m.viewport()
	switch {
	case float64(top) < m.offset:
		m.offset = float64(top)
	case float64(bottom) > m.offset+float64(viewport):
		m.offset = float64(bottom - viewport)
	}
	m.offset = m.clampOffset(m.offset)
	m.animating = false
}

func (m *Model) scrollBy(rows int) {
	if m.lyrics.Empty() {
		return
	}
	m.synced = false
	m.animating = false
	m.offset = m.clampOffset(math.Round(m.offset) + float64(rows))
	m.cursor = m.firstVisibleLine()
}

func (m *Model) selectedLine() int {
	if m.synced {
		return m.active
	}
	return m.cursor
}

// seekTo emits a seek to the start of line i. Plain lyrics carry no times
// and never seek.
func (m *Model) seekTo(i int) tea.Cmd {
	if m.lyrics.Empty() || !m.lyrics.Synced || i < 0 || i >= len(m.lyrics.Lines) {
		return nil
	}
	pos := m.lyrics.Lines[i].Start
	return func() tea.Msg {
		return ActionMsg(playback.SeekTo{Position: pos})
	}
}

// LineAtRow returns the line drawn at panel row y, or -1.
func (m *Model) LineAtRow(y int) int {
	if m.lyrics.Empty() || y < 1 || y > m.viewport() {
		return -1
	}
	row := int(math.Round(m.offset)) + y - 1
	for i, h := range m.heights {
		if row < h {
			return i
		}
		row -= h
	}
	return -1
}

func (m *Model) firstVisibleLine() int {
	return max(0, m.LineAtRow(1))
}

// animate starts the frame loop unless it is already running.
func (m *Model) animate() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return nextFrame()
}

func (m *Model) step() tea.Cmd {
	if !m.animating {
		return nil
	}
	m.offset, m.velocity = m.spring.Update(m.offset, m.velocity, m.target)
	if math.Abs(m.offset-m.target) < settleDelta && math.Abs(m.velocity) < settleDelta {
		m.offset, m.velocity = m.target, 0
		m.animating = false
		return nil
	}
	return nextFrame()
}

func nextFrame() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(time.Time) tea.Msg { return frameMsg{} })
}

// retarget recomputes the scroll target from the active line.
func (m *Model) retarget() {
	if m.active < 0 {
		return
	}
	m.target = float64(subtitle.ScrollTarget(m.heights, m.active, m.viewport()))
}

// measure recomputes the wrapped height of every line.
func (m *Model) measure() {
	if m.lyrics.Empty() {
		m.heights = nil
		return
	}
	width := m.textWidth()
	m.heights = make([]int, len(m.lyrics.Lines))
	for i, line := range m.lyrics.Lines {
		m.heights[i] = render.WrapHeight(line.Text, width)
	}
}

func (m *Model) rowOf(i int) int {
	row := 0
	for _, h := range m.heights[:i] {
		row += h
	}
	return row
}

func (m *Model) totalRows() int {
	return m.rowOf(len(m.heights))
}

func (m *Model) clampOffset(off float64) float64 {
	return max(0, min(off, float64(m.totalRows()-m.viewport())))
}

func (m *Model) viewport() int {
	return max(1, m.Height()-chrome)
}

// textWidth leaves room for the two-cell line marker.
func (m *Model) textWidth() int {
	return max(1, m.Width()-2)
}
