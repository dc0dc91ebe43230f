package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play      string
	Pause     string
	Previous  string
	Next      string
	Shuffle   string
	RepeatAll string
	RepeatOne string
	RepeatOff string
	Liked     string
	NotLiked  string
	Volume    string
	Muted     string
	Song      string
	Artist    string
	Lyrics    string
	Error     string
}

var (
	nerdIcons = Icons{
		Play:      "󰐊", // nf-md-play
		Pause:     "󰏤", // nf-md-pause
		Previous:  "󰒮", // nf-md-skip_previous
		Next:      "󰒭", // nf-md-skip_next
		Shuffle:   "󰒟", // nf-md-shuffle
		RepeatAll: "󰑖", // nf-md-repeat
		RepeatOne: "󰑘", // nf-md-repeat_once
		RepeatOff: "󰑗", // nf-md-repeat_off
		Liked:     "󰣐", // nf-md-heart
		NotLiked:  "󰣑", // nf-md-heart_outline
		Volume:    "󰕾", // nf-md-volume_high
		Muted:     "󰝟", // nf-md-volume_off
		Song:      " ",
		Artist:    " ",
		Lyrics:    "󰎈 ",
		Error:     " ",
	}

	unicodeIcons = Icons{
		Play:      "▶",
		Pause:     "⏸",
		Previous:  "⏮",
		Next:      "⏭",
		Shuffle:   "🔀",
		RepeatAll: "🔁",
		RepeatOne: "🔂",
		RepeatOff: "↻",
		Liked:     "♥",
		NotLiked:  "♡",
		Volume:    "🔊",
		Muted:     "🔇",
		Song:      "🎵 ",
		Artist:    "👤 ",
		Lyrics:    "🎤 ",
		Error:     "⚠ ",
	}

	noneIcons = Icons{
		Play:      ">",
		Pause:     "||",
		Previous:  "|<",
		Next:      ">|",
		Shuffle:   "[S]",
		RepeatAll: "[R]",
		RepeatOne: "[1]",
		RepeatOff: "[-]",
		Liked:     "*",
		NotLiked:  "o",
		Volume:    "vol",
		Muted:     "mute",
		Error:     "! ",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// PlayPause returns the icon for the play/pause button: pause while
// playing, play otherwise.
func PlayPause(playing bool) string {
	if playing {
		return current.Pause
	}
	return current.Play
}

// Repeat returns the icon for a repeat mode name ("none", "one", "all").
func Repeat(mode string) string {
	switch mode {
	case "one":
		return current.RepeatOne
	case "all":
		return current.RepeatAll
	default:
		return current.RepeatOff
	}
}

// Like returns the heart icon for a like state.
func Like(liked bool) string {
	if liked {
		return current.Liked
	}
	return current.NotLiked
}

// Volume returns the speaker icon for a mute state.
func Volume(muted bool) string {
	if muted {
		return current.Muted
	}
	return current.Volume
}

// Shuffle returns the shuffle icon.
func Shuffle() string {
	return current.Shuffle
}

// Previous returns the skip-back icon.
func Previous() string {
	return current.Previous
}

// Next returns the skip-forward icon.
func Next() string {
	return current.Next
}

// FormatSong formats a song title with the appropriate icon.
func FormatSong(name string) string {
	return current.Song + name
}

// FormatArtist formats an artist name with the appropriate icon.
func FormatArtist(name string) string {
	return current.Artist + name
}

// FormatLyrics formats the lyrics panel title.
func FormatLyrics(name string) string {
	return current.Lyrics + name
}

// FormatError prefixes an error message with the warning icon.
func FormatError(msg string) string {
	return current.Error + msg
}
