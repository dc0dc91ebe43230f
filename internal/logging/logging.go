// Package logging configures logrus for a terminal UI: entries go to a file
// under the XDG state directory and stray writes to stderr from audio
// libraries are captured into the log instead of corrupting the screen.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	log "github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = log.InfoLevel

// Path returns the default log file location.
func Path() (string, error) {
	return xdg.StateFile(filepath.Join("sangeetx", "sangeetx.log"))
}

// ParseLevel parses a level name. An empty name yields DefaultLevel.
func ParseLevel(name string) (log.Level, error) {
	if name == "" {
		return DefaultLevel, nil
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return DefaultLevel, fmt.Errorf("parse log level: %w", err)
	}
	return lvl, nil
}

// Setup points the standard logger at path with the given level and
// starts stderr capture. The returned closer restores stderr and closes
// the file.
func Setup(path string, level log.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	Configure(log.StandardLogger(), f, level)

	if err := startCapture(); err != nil {
		log.WithError(err).Warn("stderr capture unavailable")
	}
	return closer{f}, nil
}

// Configure applies the file formatter and level to logger.
func Configure(logger *log.Logger, w io.Writer, level log.Level) {
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	logger.SetReportCaller(level >= log.DebugLevel)
}

type closer struct{ f *os.File }

func (c closer) Close() error {
	stopCapture()
	return c.f.Close()
}
