// Package remote serves an optional HTTP surface for controlling the
// playback session from other devices: the current state, a dispatch
// endpoint and a server-sent event stream.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/playback"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Session is the part of the playback session the remote drives.
type Session interface {
	Dispatch(a playback.Action) error
	Snapshot() playback.Snapshot
	Queue() []api.Song
	Subscribe() *playback.Subscription
}

// Server is the remote-control HTTP server.
type Server struct {
	session Session
	hub     *hub
	router  chi.Router
}

// New creates a Server for session.
func New(session Session) *Server {
	s := &Server{session: session, hub: newHub()}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logRequests)
	r.Get("/state", s.getState)
	r.Get("/queue", s.getQueue)
	r.Post("/dispatch", s.postDispatch)
	r.Get("/events", s.getEvents)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe forwards session events and serves on addr until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	go s.hub.forward(ctx, s.session.Subscribe())

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("remote shutdown")
		}
	}()

	log.WithField("addr", addr).Info("remote control listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("remote: %w", err)
	}
	return nil
}

func (s *Server) getState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, jsonState(s.session.Snapshot()))
}

func (s *Server) getQueue(w http.ResponseWriter, _ *http.Request) {
	snap := s.session.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"songs": s.session.Queue(),
		"index": snap.Index,
	})
}

func (s *Server) postDispatch(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	a, err := req.toAction()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.session.Dispatch(a); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, playback.ErrClosed) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonState(s.session.Snapshot()))
}

func (s *Server) getEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming unsupported"))
		return
	}
	ch := s.hub.join()
	defer s.hub.leave(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	// The current state first, so clients need not poll /state.
	if data, err := json.Marshal(jsonState(s.session.Snapshot())); err == nil {
		writeEvent(w, event{Name: "snapshot", Data: data})
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case e := <-ch:
			writeEvent(w, e)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, e event) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Name, e.Data)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Debug("write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// logRequests logs each request at a level picked by its status.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		entry := log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		})
		switch code := ww.Status(); {
		case code >= 500:
			entry.Error("remote request")
		case code >= 400:
			entry.Warn("remote request")
		default:
			entry.Debug("remote request")
		}
	})
}
