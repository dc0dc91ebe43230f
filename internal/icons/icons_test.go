package icons

import "testing"

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		style    string
		expected Icons
	}{
		{"nerd style", "nerd", nerdIcons},
		{"unicode style", "unicode", unicodeIcons},
		{"none style", "none", noneIcons},
		{"empty string defaults to none", "", noneIcons},
		{"unknown style defaults to none", "invalid", noneIcons},
		{"case sensitive - NERD defaults to none", "NERD", noneIcons},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)
			if Current() != tt.expected {
				t.Errorf("Init(%q) selected the wrong icon set", tt.style)
			}
		})
	}

	// Reset to default
	Init("none")
}

func TestStateIcons(t *testing.T) {
	Init("none")
	defer Init("none")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"playing shows pause", PlayPause(true), "||"},
		{"paused shows play", PlayPause(false), ">"},
		{"repeat one", Repeat("one"), "[1]"},
		{"repeat all", Repeat("all"), "[R]"},
		{"repeat none", Repeat("none"), "[-]"},
		{"unknown repeat", Repeat("bogus"), "[-]"},
		{"liked", Like(true), "*"},
		{"not liked", Like(false), "o"},
		{"muted", Volume(true), "mute"},
		{"unmuted", Volume(false), "vol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	Init("unicode")
	defer Init("none")

	if got := FormatSong("Kesariya"); got != "🎵 Kesariya" {
		t.Errorf("FormatSong = %q", got)
	}
	if got := FormatError("offline"); got != "⚠ offline" {
		t.Errorf("FormatError = %q", got)
	}

	Init("none")
	if got := FormatArtist("Arijit"); got != "Arijit" {
		t.Errorf("FormatArtist (none) = %q", got)
	}
}
