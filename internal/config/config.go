package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultAPIURL   = "http://localhost:5000/api"
	DefaultLanguage = "en"
	DefaultVolume   = 0.8
)

type Config struct {
	APIURL   string `koanf:"api_url"`
	APIToken string `koanf:"api_token"`
	Language string `koanf:"language"` // subtitle language, e.g. "en", "hi"
	Platform string `koanf:"platform"` // "auto", "desktop" or "mobile"
	Icons    string `koanf:"icons"`    // "nerd", "unicode", or "none"
	LogLevel string `koanf:"log_level"`

	// Autoplay starts the next song when one ends (default: true)
	Autoplay *bool `koanf:"autoplay"`

	// Volume is the initial level (0.0-1.0) used until one is saved
	Volume *float64 `koanf:"volume"`

	Lyrics LyricsConfig `koanf:"lyrics"`

	// Remote control HTTP surface (disabled unless listen is set)
	Remote RemoteConfig `koanf:"remote"`
}

// LyricsConfig holds lyrics display and lookup settings.
type LyricsConfig struct {
	Synced    *bool  `koanf:"synced"`     // follow playback (default: true)
	LRCLib    *bool  `koanf:"lrclib"`     // fall back to lrclib.net (default: true)
	LRCLibURL string `koanf:"lrclib_url"` // alternative lrclib instance
}

// RemoteConfig holds the remote control server settings.
type RemoteConfig struct {
	Listen string `koanf:"listen"` // e.g. "127.0.0.1:7070"
}

// Load reads the configuration. When path is set only that file is read
// and it must exist; otherwise the default locations are tried in order
// and later files override earlier ones.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(expandPath(path)), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else {
		for _, p := range getConfigPaths() {
			if _, err := os.Stat(p); err == nil {
				if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
					return nil, fmt.Errorf("load %s: %w", p, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg, os.Getenv)

	cfg.APIURL = strings.TrimSuffix(cfg.APIURL, "/")
	cfg.Lyrics.LRCLibURL = strings.TrimSuffix(cfg.Lyrics.LRCLibURL, "/")
	cfg.Platform = strings.ToLower(strings.TrimSpace(cfg.Platform))

	return cfg, nil
}

// Environment overrides, also read from a .env file by LoadDotEnv.
const (
	EnvAPIURL   = "SANGEETX_API_URL"
	EnvAPIToken = "SANGEETX_API_TOKEN"
	EnvPlatform = "SANGEETX_PLATFORM"
)

// LoadDotEnv reads a .env file from the working directory into the
// environment, without overriding variables that are already set. A
// missing file is not an error.
func LoadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := getenv(EnvAPIToken); v != "" {
		cfg.APIToken = v
	}
	if v := getenv(EnvPlatform); v != "" {
		cfg.Platform = v
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/sangeetx/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sangeetx", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetAPIURL returns the API base URL with the default applied.
func (c *Config) GetAPIURL() string {
	if c.APIURL == "" {
		return DefaultAPIURL
	}
	return c.APIURL
}

// GetLanguage returns the subtitle language with the default applied.
func (c *Config) GetLanguage() string {
	if c.Language == "" {
		return DefaultLanguage
	}
	return c.Language
}

// GetPlatform returns "desktop", "mobile" or "auto".
func (c *Config) GetPlatform() string {
	switch c.Platform {
	case "desktop", "mobile":
		return c.Platform
	default:
		return "auto"
	}
}

// GetAutoplay returns whether autoplay is enabled (default: true).
func (c *Config) GetAutoplay() bool {
	return c.Autoplay == nil || *c.Autoplay
}

// GetVolume returns the initial volume clamped to [0, 1].
func (c *Config) GetVolume() float64 {
	if c.Volume == nil {
		return DefaultVolume
	}
	return max(0, min(*c.Volume, 1))
}

// GetLyricsSynced returns whether lyrics follow playback (default: true).
func (c *Config) GetLyricsSynced() bool {
	return c.Lyrics.Synced == nil || *c.Lyrics.Synced
}

// HasLRCLib returns true if the lrclib fallback is enabled (default: true).
func (c *Config) HasLRCLib() bool {
	return c.Lyrics.LRCLib == nil || *c.Lyrics.LRCLib
}

// HasRemote returns true if the remote control server is configured.
func (c *Config) HasRemote() bool {
	return c.Remote.Listen != ""
}
