// Package cover renders song artwork with half-block characters, falling
// back to a placeholder glyph when the image cannot be loaded.
package cover

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder for cover art
	_ "image/png"  // PNG decoder for cover art
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"

	"github.com/sangeetx/sangeetx/internal/ui/styles"
)

const (
	fetchTimeout = 5 * time.Second
	maxImageSize = 10 << 20
)

// LoadedMsg carries the decoded image for URL, or the load error.
type LoadedMsg struct {
	URL   string
	Image image.Image
	Err   error
}

// Model shows the cover of the current song.
type Model struct {
	client *http.Client

	url        string
	img        image.Image
	loadFailed bool

	width, height int
	rendered      string
}

// New creates a cover view. A nil client uses http.DefaultClient.
func New(client *http.Client) *Model {
	if client == nil {
		client = http.DefaultClient
	}
	return &Model{client: client}
}

// SetURL switches to a new image and returns the command loading it.
// Setting the current URL again does nothing.
func (m *Model) SetURL(url string) tea.Cmd {
	if url == m.url && (m.img != nil || m.loadFailed) {
		return nil
	}
	m.url = url
	m.img = nil
	m.rendered = ""
	m.loadFailed = url == ""
	if url == "" {
		return nil
	}
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		img, err := fetch(ctx, client, url)
		return LoadedMsg{URL: url, Image: img, Err: err}
	}
}

// SetSize sets the area in cells. Each cell shows two pixels stacked.
func (m *Model) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width, m.height = width, height
	m.rendered = ""
}

// LoadFailed reports whether the fallback is shown for a set URL.
func (m *Model) LoadFailed() bool {
	return m.loadFailed
}

// Update handles LoadedMsg. Results for a URL that is no longer current
// are dropped.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(LoadedMsg)
	if !ok || loaded.URL != m.url {
		return nil
	}
	if loaded.Err != nil || loaded.Image == nil {
		log.WithError(loaded.Err).WithField("url", loaded.URL).Debug("cover unavailable")
		m.loadFailed = true
		return nil
	}
	m.img = loaded.Image
	m.loadFailed = false
	m.rendered = ""
	return nil
}

// View renders the cover, or the fallback, in exactly width x height cells.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.img == nil {
		return m.placeholder()
	}
	if m.rendered == "" {
		m.rendered = halfBlocks(m.img, m.width, m.height)
	}
	return m.rendered
}

func (m *Model) placeholder() string {
	t := styles.T()
	glyph := ""
	if m.loadFailed {
		glyph = "♪"
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(t.FgMuted).Render(glyph),
		lipgloss.WithWhitespaceBackground(t.BgCursor))
}

// halfBlocks scales img to width x 2*height pixels and draws each cell as
// an upper half block: foreground is the top pixel, background the bottom.
func halfBlocks(img image.Image, width, height int) string {
	scaled := resize.Resize(uint(width), uint(height*2), img, resize.Lanczos3)
	bounds := scaled.Bounds()

	var sb strings.Builder
	for row := range height {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for x := range width {
			top := hexAt(scaled, bounds.Min.X+x, bounds.Min.Y+2*row)
			bottom := hexAt(scaled, bounds.Min.X+x, bounds.Min.Y+2*row+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
	}
	return sb.String()
}

func hexAt(img image.Image, x, y int) string {
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return "#000000"
	}
	return c.Hex()
}

func fetch(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cover fetch returned status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New("empty cover image")
	}
	return img, nil
}
