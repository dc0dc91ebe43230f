package subtitle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"
	log "github.com/sirupsen/logrus"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/lrclib"
)

// Origins reported in Lyrics.Origin.
const (
	OriginAPI    = "api"
	OriginCache  = "cache"
	OriginLRCLib = "lrclib"
)

// SubtitleFetcher returns timed subtitles for a song.
type SubtitleFetcher interface {
	Subtitles(ctx context.Context, songID, language string) ([]api.Subtitle, error)
}

// LyricsFinder looks up lyrics by artist and title.
type LyricsFinder interface {
	Get(ctx context.Context, artist, title string, duration time.Duration) (*lrclib.LyricsResult, error)
	Search(ctx context.Context, query string) ([]lrclib.LyricsResult, error)
}

// Source provides lyrics from the SangeetX API, the on-disk cache, or
// lrclib, in that order.
type Source struct {
	api      SubtitleFetcher
	finder   LyricsFinder
	cacheDir string
}

// NewSource creates a lyrics source. Either backend may be nil.
func NewSource(fetcher SubtitleFetcher, finder LyricsFinder) *Source {
	return &Source{
		api:      fetcher,
		finder:   finder,
		cacheDir: filepath.Join(xdg.CacheHome, "sangeetx", "lyrics"),
	}
}

// WithCacheDir sets the directory used for cached .lrc files. An empty dir
// disables caching.
func (s *Source) WithCacheDir(dir string) *Source {
	s.cacheDir = dir
	return s
}

// Fetch retrieves lyrics for song. Failures of any backend fall through to
// the next one; when nothing is found the result is nil with no error.
// The returned error is informational and only set when every backend
// failed.
func (s *Source) Fetch(ctx context.Context, song api.Song, language string) (*Lyrics, error) {
	var errs []error

	if s.api != nil && song.ID != "" {
		subs, err := s.api.Subtitles(ctx, song.ID, language)
		switch {
		case err == nil:
			if lines := FromAPI(subs); len(lines) > 0 {
				return &Lyrics{Lines: lines, Synced: true, Origin: OriginAPI}, nil
			}
		case !errors.Is(err, api.ErrNotFound):
			errs = append(errs, err)
		}
	}

	if song.ArtistName == "" || song.Title == "" {
		return nil, errors.Join(errs...)
	}

	if lines, err := s.loadCache(song); err == nil && len(lines) > 0 {
		return &Lyrics{Lines: lines, Synced: true, Origin: OriginCache}, nil
	}

	if s.finder == nil {
		return nil, errors.Join(errs...)
	}
	lyrics, err := s.fetchLRCLib(ctx, song)
	if err != nil {
		errs = append(errs, err)
	}
	if lyrics != nil {
		return lyrics, nil
	}
	return nil, errors.Join(errs...)
}

func (s *Source) fetchLRCLib(ctx context.Context, song api.Song) (*Lyrics, error) {
	result, err := s.finder.Get(ctx, song.ArtistName, song.Title, song.Length())
	if errors.Is(err, lrclib.ErrNotFound) {
		result, err = s.searchLRCLib(ctx, song)
	}
	if err != nil {
		if errors.Is(err, lrclib.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	switch {
	case result.HasSyncedLyrics():
		lines, err := ParseLRC(strings.NewReader(result.SyncedLyrics), song.Length())
		if err != nil || len(lines) == 0 {
			return nil, err
		}
		if err := s.saveCache(song, result.SyncedLyrics); err != nil {
			log.WithError(err).Warn("cache lyrics")
		}
		return &Lyrics{Lines: lines, Synced: true, Origin: OriginLRCLib}, nil
	case result.HasPlainLyrics():
		return &Lyrics{Lines: ParsePlain(result.PlainLyrics), Origin: OriginLRCLib}, nil
	default:
		return nil, nil
	}
}

// searchLRCLib picks the first search hit with lyrics, preferring synced.
func (s *Source) searchLRCLib(ctx context.Context, song api.Song) (*lrclib.LyricsResult, error) {
	results, err := s.finder.Search(ctx, song.ArtistName+" "+song.Title)
	if err != nil {
		return nil, err
	}
	var plain *lrclib.LyricsResult
	for i := range results {
		r := &results[i]
		if r.HasSyncedLyrics() {
			return r, nil
		}
		if plain == nil && r.HasPlainLyrics() {
			plain = r
		}
	}
	if plain != nil {
		return plain, nil
	}
	return nil, lrclib.ErrNotFound
}

func (s *Source) loadCache(song api.Song) ([]Line, error) {
	path := s.cachePath(song)
	if path == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLRC(f, song.Length())
}

func (s *Source) saveCache(song api.Song, content string) error {
	path := s.cachePath(song)
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

func (s *Source) cachePath(song api.Song) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, sanitizeFilename(song.ArtistName), sanitizeFilename(song.Title)+".lrc")
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "_"
	}
	return name
}
