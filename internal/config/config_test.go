package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/config.toml", filepath.Join(home, "config.toml")},
		{"absolute path unchanged", "/etc/sangeetx.toml", "/etc/sangeetx.toml"},
		{"relative path unchanged", "conf/sangeetx.toml", "conf/sangeetx.toml"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetAPIURL(); got != DefaultAPIURL {
		t.Errorf("GetAPIURL() = %q, want %q", got, DefaultAPIURL)
	}
	if got := cfg.GetLanguage(); got != DefaultLanguage {
		t.Errorf("GetLanguage() = %q, want %q", got, DefaultLanguage)
	}
	if got := cfg.GetPlatform(); got != "auto" {
		t.Errorf("GetPlatform() = %q, want auto", got)
	}
	if !cfg.GetAutoplay() {
		t.Error("GetAutoplay() = false, want true")
	}
	if got := cfg.GetVolume(); got != DefaultVolume {
		t.Errorf("GetVolume() = %v, want %v", got, DefaultVolume)
	}
	if !cfg.GetLyricsSynced() {
		t.Error("GetLyricsSynced() = false, want true")
	}
	if !cfg.HasLRCLib() {
		t.Error("HasLRCLib() = false, want true")
	}
	if cfg.HasRemote() {
		t.Error("HasRemote() = true, want false")
	}
}

func TestGetVolume_Clamped(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0.3, 0.3},
		{4, 1},
	}
	for _, tt := range tests {
		v := tt.in
		cfg := &Config{Volume: &v}
		if got := cfg.GetVolume(); got != tt.want {
			t.Errorf("GetVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGetPlatform_Invalid(t *testing.T) {
	cfg := &Config{Platform: "tablet"}
	if got := cfg.GetPlatform(); got != "auto" {
		t.Errorf("GetPlatform() = %q, want auto", got)
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.WriteFile("config.toml", []byte(""), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	// Values may be inherited from ~/.config/sangeetx/config.toml if it exists
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	content := `
api_url = "https://api.sangeetx.example/v1/"
api_token = "secret"
language = "hi"
platform = "Mobile"
autoplay = false
volume = 0.5
log_level = "debug"

[lyrics]
synced = false
lrclib = false
lrclib_url = "https://lrclib.example/api/"

[remote]
listen = "127.0.0.1:7070"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GetAPIURL() != "https://api.sangeetx.example/v1" {
		t.Errorf("APIURL = %q", cfg.GetAPIURL())
	}
	if cfg.APIToken != "secret" {
		t.Errorf("APIToken = %q", cfg.APIToken)
	}
	if cfg.GetLanguage() != "hi" {
		t.Errorf("Language = %q", cfg.GetLanguage())
	}
	if cfg.GetPlatform() != "mobile" {
		t.Errorf("Platform = %q, want mobile", cfg.GetPlatform())
	}
	if cfg.GetAutoplay() {
		t.Error("Autoplay = true, want false")
	}
	if cfg.GetVolume() != 0.5 {
		t.Errorf("Volume = %v, want 0.5", cfg.GetVolume())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.GetLyricsSynced() || cfg.HasLRCLib() {
		t.Error("lyrics flags should be disabled")
	}
	if cfg.Lyrics.LRCLibURL != "https://lrclib.example/api" {
		t.Errorf("LRCLibURL = %q", cfg.Lyrics.LRCLibURL)
	}
	if !cfg.HasRemote() || cfg.Remote.Listen != "127.0.0.1:7070" {
		t.Errorf("Remote = %+v", cfg.Remote)
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.WriteFile("config.toml", []byte("invalid = [toml"), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	if _, err := Load(""); err == nil {
		t.Error("Load() expected error for invalid TOML, got nil")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAPIURL:   "https://api.sangeetx.example",
		EnvAPIToken: "from-env",
	}
	cfg := &Config{APIURL: "http://file", APIToken: "from-file", Platform: "desktop"}

	applyEnv(cfg, func(k string) string { return env[k] })

	if cfg.APIURL != "https://api.sangeetx.example" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.APIToken != "from-env" {
		t.Errorf("APIToken = %q", cfg.APIToken)
	}
	if cfg.Platform != "desktop" {
		t.Errorf("Platform = %q, want unchanged", cfg.Platform)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() without file: %v", err)
	}

	t.Setenv(EnvPlatform, "")
	if err := os.WriteFile(".env", []byte(EnvPlatform+"=mobile\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Unsetenv(EnvPlatform); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv(): %v", err)
	}
	if got := os.Getenv(EnvPlatform); got != "mobile" {
		t.Errorf("%s = %q, want mobile", EnvPlatform, got)
	}
}
