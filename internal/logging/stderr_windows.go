//go:build windows

package logging

import "os"

func startCapture() error { return nil }

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

func stopCapture() {}
