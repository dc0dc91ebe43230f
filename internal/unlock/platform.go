// Package unlock defers playback on platforms that only allow audio to
// start after a user gesture.
package unlock

import "strings"

// Platform is the kind of device the player runs on.
type Platform int

const (
	Desktop Platform = iota
	Mobile
)

func (p Platform) String() string {
	if p == Mobile {
		return "mobile"
	}
	return "desktop"
}

// mobileMarkers are environment variables set by Termux and Android shells.
var mobileMarkers = []string{"TERMUX_VERSION", "ANDROID_ROOT", "ANDROID_DATA"}

// DetectPlatform resolves the configured platform. "auto" (or anything
// unrecognized) inspects the environment through getenv.
func DetectPlatform(setting string, getenv func(string) string) Platform {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "mobile":
		return Mobile
	case "desktop":
		return Desktop
	}
	for _, key := range mobileMarkers {
		if getenv(key) != "" {
			return Mobile
		}
	}
	if strings.Contains(getenv("PREFIX"), "com.termux") {
		return Mobile
	}
	return Desktop
}
