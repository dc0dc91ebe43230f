// Package notify announces songs as desktop notifications.
package notify

import "path/filepath"

const (
	appName      = "SangeetX"
	desktopEntry = "sangeetx"

	// CategoryMusic marks notifications about the playing song.
	CategoryMusic = "x-gnome.music"
)

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string // song title
	Body       string // artist and album
	Icon       string // cover file path or themed icon name
	Category   string
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // 0 = new notification
	Urgency    Urgency
	Transient  bool // keep out of the notification history
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// hints returns the freedesktop hints for n. A cover file is passed as
// image-path so servers show it at full size.
func (n Notification) hints() map[string]any {
	h := map[string]any{
		"urgency":       byte(n.Urgency),
		"desktop-entry": desktopEntry,
	}
	if n.Category != "" {
		h["category"] = n.Category
	}
	if n.Transient {
		h["transient"] = true
	}
	if filepath.IsAbs(n.Icon) {
		h["image-path"] = n.Icon
	}
	return h
}
