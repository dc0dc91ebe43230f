package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/app"
	"github.com/sangeetx/sangeetx/internal/config"
	"github.com/sangeetx/sangeetx/internal/icons"
	"github.com/sangeetx/sangeetx/internal/logging"
	"github.com/sangeetx/sangeetx/internal/lrclib"
	"github.com/sangeetx/sangeetx/internal/mpris"
	"github.com/sangeetx/sangeetx/internal/notify"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/player"
	"github.com/sangeetx/sangeetx/internal/playlist"
	"github.com/sangeetx/sangeetx/internal/remote"
	"github.com/sangeetx/sangeetx/internal/settings"
	"github.com/sangeetx/sangeetx/internal/subtitle"
	"github.com/sangeetx/sangeetx/internal/unlock"
)

var errNoTerminal = errors.New("sangeetx needs a terminal; use `sangeetx songs` for plain output")

// loadConfig reads .env, the config file and the log level.
func loadConfig(opts options) (*config.Config, log.Level, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, 0, fmt.Errorf("read .env: %w", err)
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, 0, fmt.Errorf("load config: %w", err)
	}
	name := opts.logLevel
	if name == "" {
		name = cfg.LogLevel
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, 0, err
	}
	return cfg, level, nil
}

func newAPIClient(cfg *config.Config) *api.Client {
	var opts []api.Option
	if cfg.APIToken != "" {
		opts = append(opts, api.WithToken(cfg.APIToken))
	}
	return api.New(cfg.GetAPIURL(), opts...)
}

func runPlayer(ctx context.Context, opts options) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, level, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logPath, err := logging.Path()
	if err != nil {
		return fmt.Errorf("log path: %w", err)
	}
	logCloser, err := logging.Setup(logPath, level)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log.WithField("version", appVersion()).Info("starting")

	icons.Init(cfg.Icons)

	store, err := settings.Open()
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	defer store.Close()
	applyConfigDefaults(store, cfg)

	client := newAPIClient(cfg)
	platform := unlock.DetectPlatform(cfg.GetPlatform(), os.Getenv)
	out := player.NewOutput(platform == unlock.Mobile)
	ctrl := player.NewController(out.NewElement)
	defer ctrl.Close()
	gate := unlock.NewGate(platform, ctrl)
	log.WithField("platform", platform).Info("audio output ready")

	svc := playback.New(ctrl, playlist.NewQueue(), playback.Options{
		Gate:     gate,
		Likes:    client,
		Plays:    client,
		Settings: store,
	})
	defer svc.Close()
	restoreQueue(svc, store)

	lyrics := subtitle.NewSource(client, lyricsFinder(cfg))
	if dir, err := cacheDir("lyrics"); err == nil {
		lyrics = lyrics.WithCacheDir(dir)
	} else {
		log.WithError(err).Warn("lyrics cache disabled")
	}

	closers := startIntegrations(ctx, cfg, svc)
	defer closeAll(closers)

	model := app.New(app.Deps{
		Service:    svc,
		Catalog:    client,
		Lyrics:     lyrics,
		Settings:   store,
		Queue:      store,
		Gate:       gate,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Language:   cfg.GetLanguage(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// applyConfigDefaults seeds settings the user has not changed yet.
func applyConfigDefaults(store settings.Store, cfg *config.Config) {
	if _, ok := store.Get(settings.KeyAutoplay); !ok {
		if err := settings.SetBool(store, settings.KeyAutoplay, cfg.GetAutoplay()); err != nil {
			log.WithError(err).Warn("seed autoplay")
		}
	}
	if _, ok := store.Get(settings.KeyVolume); !ok {
		if err := settings.SetFloat(store, settings.KeyVolume, cfg.GetVolume()); err != nil {
			log.WithError(err).Warn("seed volume")
		}
	}
	if _, ok := store.Get(settings.KeyLyricsSynced); !ok {
		if err := settings.SetBool(store, settings.KeyLyricsSynced, cfg.GetLyricsSynced()); err != nil {
			log.WithError(err).Warn("seed lyrics mode")
		}
	}
}

func restoreQueue(svc playback.Service, store *settings.DB) {
	state, err := store.GetQueue()
	if err != nil {
		log.WithError(err).Warn("load saved queue")
		return
	}
	if state == nil || len(state.Songs) == 0 {
		return
	}
	svc.Restore(state.Songs, state.CurrentIndex, playlist.ParseRepeatMode(state.RepeatMode), state.Shuffle)
	log.WithField("songs", len(state.Songs)).Info("queue restored")
}

func lyricsFinder(cfg *config.Config) subtitle.LyricsFinder {
	if !cfg.HasLRCLib() {
		return nil
	}
	var opts []lrclib.Option
	if cfg.Lyrics.LRCLibURL != "" {
		opts = append(opts, lrclib.WithBaseURL(cfg.Lyrics.LRCLibURL))
	}
	return lrclib.New(opts...)
}

func cacheDir(name string) (string, error) {
	dir := filepath.Join(xdg.CacheHome, "sangeetx", name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// startIntegrations starts the optional surfaces around the session. None
// of them is required to play music, so failures are only logged.
func startIntegrations(ctx context.Context, cfg *config.Config, svc playback.Service) []io.Closer {
	var closers []io.Closer

	if adapter, err := mpris.New(svc); err != nil {
		log.WithError(err).Warn("mpris unavailable")
	} else {
		closers = append(closers, adapter)
	}

	if n, err := notify.New(); err != nil {
		log.WithError(err).Warn("notifications unavailable")
	} else {
		icons := &notify.IconCache{Client: &http.Client{Timeout: 10 * time.Second}}
		if dir, err := cacheDir("icons"); err == nil {
			icons.Dir = dir
		} else {
			icons = nil
		}
		sub := svc.Subscribe()
		go notify.NewTrackNotifier(n, icons).Watch(ctx, sub.TrackChanged, sub.Done)
	}

	if cfg.HasRemote() {
		srv := remote.New(svc)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Remote.Listen); err != nil {
				log.WithError(err).Error("remote control stopped")
			}
		}()
	}

	return closers
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.WithError(err).Debug("close")
		}
	}
}
