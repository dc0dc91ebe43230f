// Package settings persists user preferences behind a small get/set/subscribe
// interface so that no component reaches for global state.
package settings

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"
)

// Keys stored by the player.
const (
	KeyAutoplay       = "autoplay"
	KeyVolume         = "volume"
	KeyMuted          = "muted"
	KeyLyricsSynced   = "lyrics.synced"
	KeyLanguage       = "language"
	KeyRecentSearches = "recent_searches"
)

// MaxRecentSearches bounds the recent search list.
const MaxRecentSearches = 10

// Store is a string key/value store with change notification.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	// Subscribe registers fn to be called after every successful Set. The
	// returned function removes the subscription.
	Subscribe(fn func(key, value string)) (cancel func())
}

// watchers fans changes out to subscribers.
type watchers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(key, value string)
}

func (w *watchers) add(fn func(key, value string)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fns == nil {
		w.fns = make(map[int]func(key, value string))
	}
	id := w.next
	w.next++
	w.fns[id] = fn
	return func() {
		w.mu.Lock()
		delete(w.fns, id)
		w.mu.Unlock()
	}
}

func (w *watchers) notify(key, value string) {
	w.mu.Lock()
	fns := make([]func(key, value string), 0, len(w.fns))
	for _, fn := range w.fns {
		fns = append(fns, fn)
	}
	w.mu.Unlock()
	for _, fn := range fns {
		fn(key, value)
	}
}

// Memory is an in-memory Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	watch  watchers
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	m.watch.notify(key, value)
	return nil
}

func (m *Memory) Subscribe(fn func(key, value string)) func() {
	return m.watch.add(fn)
}

// Bool reads a boolean setting, returning def when unset or malformed.
func Bool(s Store, key string, def bool) bool {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// SetBool stores a boolean setting.
func SetBool(s Store, key string, v bool) error {
	return s.Set(key, strconv.FormatBool(v))
}

// Float reads a float setting, returning def when unset or malformed.
func Float(s Store, key string, def float64) float64 {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// SetFloat stores a float setting.
func SetFloat(s Store, key string, v float64) error {
	return s.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
}

// String reads a string setting, returning def when unset.
func String(s Store, key, def string) string {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// RecentSearches returns the stored searches, most recent first.
func RecentSearches(s Store) []string {
	v, ok := s.Get(KeyRecentSearches)
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return nil
	}
	return out
}

// AddRecentSearch records q at the front of the recent searches, removing an
// earlier identical entry and keeping at most MaxRecentSearches.
func AddRecentSearch(s Store, q string) error {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	list := []string{q}
	for _, prev := range RecentSearches(s) {
		if strings.EqualFold(prev, q) {
			continue
		}
		list = append(list, prev)
		if len(list) == MaxRecentSearches {
			break
		}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.Set(KeyRecentSearches, string(data))
}
