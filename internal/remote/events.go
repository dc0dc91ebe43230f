package remote

import (
	"context"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/sangeetx/sangeetx/internal/playback"
)

const clientBuffer = 32

// event is one server-sent event.
type event struct {
	Name string
	Data []byte
}

// hub fans session events out to connected event-stream clients. A client
// that falls behind misses events.
type hub struct {
	mu      sync.Mutex
	clients map[chan event]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[chan event]struct{})}
}

func (h *hub) join() chan event {
	ch := make(chan event, clientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) leave(ch chan event) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
}

func (h *hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) publish(name string, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		log.WithError(err).WithField("event", name).Error("marshal remote event")
		return
	}
	e := event{Name: name, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- e:
		default:
		}
	}
}

// forward publishes session events until the subscription is closed or
// ctx ends.
func (h *hub) forward(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.StateChanged:
			h.publish("state", map[string]string{"state": stateName(e.Current)})
		case e := <-sub.TrackChanged:
			h.publish("track", map[string]any{"song": e.Current, "index": e.Index})
		case e := <-sub.PositionChanged:
			h.publish("position", map[string]float64{
				"position": e.Position.Seconds(),
				"duration": e.Duration.Seconds(),
			})
		case e := <-sub.QueueChanged:
			h.publish("queue", map[string]any{"songs": e.Songs, "index": e.Index})
		case e := <-sub.ModeChanged:
			h.publish("mode", map[string]any{"repeat": e.Repeat.String(), "shuffle": e.Shuffle})
		case e := <-sub.LikeChanged:
			h.publish("like", map[string]any{"songId": e.SongID, "liked": e.Liked})
		case e := <-sub.PromptChanged:
			h.publish("prompt", map[string]bool{"visible": e.Visible})
		case e := <-sub.VolumeChanged:
			h.publish("volume", map[string]any{"volume": e.Volume, "muted": e.Muted})
		case e := <-sub.Error:
			h.publish("error", map[string]string{
				"operation": e.Operation,
				"songId":    e.SongID,
				"error":     errorText(e.Err),
			})
		}
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
