//go:build !windows

package logging

import (
	"bufio"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

var (
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
)

// startCapture redirects fd 2 into a pipe drained into the log. C audio
// backends (ALSA, OpenSL) write there directly, bypassing os.Stderr.
func startCapture() error {
	if origStderr >= 0 {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr, pipeRead, pipeWrite = orig, r, w

	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				log.WithField("source", "stderr").Warn(line)
			}
		}
	}()
	return nil
}

// WriteOriginal writes to the terminal's stderr, bypassing capture.
func WriteOriginal(msg string) {
	fd := origStderr
	if fd < 0 {
		fd = int(os.Stderr.Fd())
	}
	_, _ = unix.Write(fd, []byte(msg))
}

func stopCapture() {
	if origStderr < 0 {
		return
	}
	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)
	pipeWrite.Close()
	pipeRead.Close()
	origStderr = -1
}
