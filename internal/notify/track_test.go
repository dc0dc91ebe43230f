package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/playback"
)

type recordingNotifier struct {
	mu     sync.Mutex
	sent   []Notification
	nextID uint32
	err    error
}

func (r *recordingNotifier) Notify(n Notification) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	r.nextID++
	return r.nextID, nil
}

func (r *recordingNotifier) Close(uint32) error { return nil }

func (r *recordingNotifier) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

var tumHiHo = api.Song{ID: "s1", Title: "Tum Hi Ho", ArtistName: "Arijit Singh", Album: "Aashiqui 2"}

func TestAnnounce(t *testing.T) {
	rec := &recordingNotifier{}
	tn := NewTrackNotifier(rec, nil)

	require.NoError(t, tn.Announce(context.Background(), tumHiHo))
	require.NoError(t, tn.Announce(context.Background(), api.Song{ID: "s2", Title: "Kesariya"}))

	sent := rec.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "Tum Hi Ho", sent[0].Title)
	assert.Equal(t, "Arijit Singh · Aashiqui 2", sent[0].Body)
	assert.Equal(t, fallbackIcon, sent[0].Icon)
	assert.Equal(t, uint32(0), sent[0].ReplacesID)
	assert.Equal(t, uint32(1), sent[1].ReplacesID, "second replaces the first")
	assert.Empty(t, sent[1].Body)
	assert.Equal(t, CategoryMusic, sent[0].Category)
	assert.True(t, sent[0].Transient, "song changes stay out of the history")
}

func TestAnnounce_Error(t *testing.T) {
	rec := &recordingNotifier{err: errors.New("no server")}
	tn := NewTrackNotifier(rec, nil)
	assert.Error(t, tn.Announce(context.Background(), tumHiHo))
}

func TestAnnounce_CoverIcon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF})
	}))
	defer srv.Close()

	rec := &recordingNotifier{}
	tn := NewTrackNotifier(rec, &IconCache{Dir: t.TempDir(), Client: srv.Client()})
	song := tumHiHo
	song.CoverURL = srv.URL + "/covers/s1.jpg"

	require.NoError(t, tn.Announce(context.Background(), song))
	assert.FileExists(t, rec.Sent()[0].Icon)
}

func TestWatch(t *testing.T) {
	rec := &recordingNotifier{}
	tn := NewTrackNotifier(rec, nil)
	tracks := make(chan playback.TrackChange, 4)
	done := make(chan struct{})

	kesariya := api.Song{ID: "s2", Title: "Kesariya"}
	tracks <- playback.TrackChange{Current: &tumHiHo}
	tracks <- playback.TrackChange{Previous: &tumHiHo, Current: &tumHiHo}
	tracks <- playback.TrackChange{Previous: &tumHiHo}
	tracks <- playback.TrackChange{Previous: &tumHiHo, Current: &kesariya}

	finished := make(chan struct{})
	go func() {
		tn.Watch(context.Background(), tracks, done)
		close(finished)
	}()

	require.Eventually(t, func() bool { return len(rec.Sent()) == 2 }, time.Second, 5*time.Millisecond)
	close(done)
	<-finished

	sent := rec.Sent()
	assert.Equal(t, "Tum Hi Ho", sent[0].Title)
	assert.Equal(t, "Kesariya", sent[1].Title)
}
