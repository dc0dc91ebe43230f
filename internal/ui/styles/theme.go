package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Saffron - focused items, active states
	Secondary lipgloss.Color // Rose - secondary accent

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Primary text (bright)
	FgMuted  lipgloss.Color // Secondary text (dimmed)
	FgSubtle lipgloss.Color // Tertiary text (very dim)

	// Backgrounds
	BgBase   lipgloss.Color // Panel backgrounds
	BgCursor lipgloss.Color // Cursor/selection highlight

	// Borders
	Border      lipgloss.Color // Unfocused panel borders
	BorderFocus lipgloss.Color // Focused panel borders

	// Status colors
	Success lipgloss.Color // Green - playing
	Error   lipgloss.Color // Red - errors
	Warning lipgloss.Color // Amber - prompts, warnings

	// Karaoke word states
	Sung    lipgloss.Color
	Singing lipgloss.Color
	Pending lipgloss.Color

	Liked lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style // Default text
	Muted   lipgloss.Style // Dimmed text
	Subtle  lipgloss.Style // Very dim text
	Title   lipgloss.Style // Bold, bright
	Playing lipgloss.Style // Currently playing track
	Cursor  lipgloss.Style // Cursor background highlight
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	Sung    lipgloss.Style // Words of the active line already sung
	Singing lipgloss.Style // The word being sung
	Pending lipgloss.Style // Words not reached yet
	Lyric   lipgloss.Style // Lines other than the active one

	Liked  lipgloss.Style
	Banner lipgloss.Style // Error banner with retry hint
	Button lipgloss.Style // Clickable prompt button
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#ff9933"),
	Secondary: lipgloss.Color("#e05297"),

	// Text hierarchy (grayscale)
	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	// Backgrounds
	BgBase:   lipgloss.Color("#1a1a1a"),
	BgCursor: lipgloss.Color("#303030"),

	// Borders
	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#ff9933"),

	// Status
	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),

	Sung:    lipgloss.Color("#ff9933"),
	Singing: lipgloss.Color("#ffffff"),
	Pending: lipgloss.Color("#808080"),

	Liked: lipgloss.Color("#e05297"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),

		Sung:    lipgloss.NewStyle().Foreground(t.Sung).Bold(true),
		Singing: lipgloss.NewStyle().Foreground(t.Singing).Bold(true).Underline(true),
		Pending: lipgloss.NewStyle().Foreground(t.Pending).Bold(true),
		Lyric:   lipgloss.NewStyle().Foreground(t.FgSubtle),

		Liked: lipgloss.NewStyle().Foreground(t.Liked),
		Banner: lipgloss.NewStyle().
			Foreground(t.FgBase).
			Background(lipgloss.Color("#5c1f1f")).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(t.BgBase).
			Background(t.Primary).
			Bold(true).
			Padding(0, 2),
	}
}
