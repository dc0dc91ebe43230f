package notify

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/playback"
)

const (
	trackTimeout = 4000 // ms
	fallbackIcon = "audio-x-generic"
	iconTimeout  = 5 * time.Second
)

// TrackNotifier announces song changes, replacing its previous
// notification so only one is ever shown.
type TrackNotifier struct {
	notifier Notifier
	icons    *IconCache
	lastID   uint32
}

// NewTrackNotifier creates a TrackNotifier. icons may be nil, in which
// case a generic icon is used.
func NewTrackNotifier(n Notifier, icons *IconCache) *TrackNotifier {
	return &TrackNotifier{notifier: n, icons: icons}
}

// Announce shows a notification for song.
func (t *TrackNotifier) Announce(ctx context.Context, song api.Song) error {
	id, err := t.notifier.Notify(Notification{
		Title:      song.Title,
		Body:       trackBody(song),
		Icon:       t.icon(ctx, song.CoverURL),
		Timeout:    trackTimeout,
		ReplacesID: t.lastID,
		Urgency:    UrgencyLow,
		Category:   CategoryMusic,
		Transient:  true,
	})
	if err != nil {
		return err
	}
	t.lastID = id
	return nil
}

func (t *TrackNotifier) icon(ctx context.Context, coverURL string) string {
	if t.icons == nil || coverURL == "" {
		return fallbackIcon
	}
	ctx, cancel := context.WithTimeout(ctx, iconTimeout)
	defer cancel()
	p, err := t.icons.Path(ctx, coverURL)
	if err != nil {
		log.WithError(err).WithField("url", coverURL).Debug("notification icon")
		return fallbackIcon
	}
	return p
}

// Watch announces every new current song until done is closed or ctx
// ends.
func (t *TrackNotifier) Watch(ctx context.Context, tracks <-chan playback.TrackChange, done <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case e := <-tracks:
			if e.Current == nil {
				continue
			}
			if e.Previous != nil && e.Previous.ID == e.Current.ID {
				continue
			}
			if err := t.Announce(ctx, *e.Current); err != nil {
				log.WithError(err).Debug("track notification")
			}
		}
	}
}

func trackBody(song api.Song) string {
	parts := make([]string, 0, 2)
	if song.ArtistName != "" {
		parts = append(parts, song.ArtistName)
	}
	if song.Album != "" {
		parts = append(parts, song.Album)
	}
	return strings.Join(parts, " · ")
}
