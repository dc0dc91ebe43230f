package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Supported container formats.
const (
	formatMP3    = "mp3"
	formatFLAC   = "flac"
	formatWAV    = "wav"
	formatVorbis = "ogg"
)

// ErrUnsupportedFormat is returned for audio the element cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// ErrTooLarge is returned when an audio file exceeds the size cap.
var ErrTooLarge = errors.New("audio file too large")

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// fetchAndDecode reads the whole file at src into memory so the decoded
// stream is seekable, then decodes it. src is an http(s) URL or a local path.
func fetchAndDecode(ctx context.Context, client *http.Client, src string, maxBytes int64) (beep.StreamSeekCloser, beep.Format, error) {
	data, contentType, err := fetch(ctx, client, src, maxBytes)
	if err != nil {
		return nil, beep.Format{}, err
	}
	kind := detectFormat(contentType, src, data)
	if kind == "" {
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, src)
	}
	return decode(kind, memFile{bytes.NewReader(data)})
}

func fetch(ctx context.Context, client *http.Client, src string, maxBytes int64) ([]byte, string, error) {
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		f, err := os.Open(strings.TrimPrefix(src, "file://"))
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := readCapped(f, maxBytes)
		return data, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch audio: %s", resp.Status)
	}
	data, err := readCapped(resp.Body, maxBytes)
	return data, resp.Header.Get("Content-Type"), err
}

func readCapped(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// detectFormat picks a decoder from the content type, then the URL
// extension, then the leading magic bytes.
func detectFormat(contentType, src string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "audio/mpeg", "audio/mp3":
			return formatMP3
		case "audio/flac", "audio/x-flac":
			return formatFLAC
		case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
			return formatWAV
		case "audio/ogg", "audio/vorbis", "application/ogg":
			return formatVorbis
		}
	}

	p := src
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".mp3":
		return formatMP3
	case ".flac":
		return formatFLAC
	case ".wav":
		return formatWAV
	case ".ogg", ".oga":
		return formatVorbis
	}

	switch {
	case bytes.HasPrefix(data, []byte("fLaC")):
		return formatFLAC
	case bytes.HasPrefix(data, []byte("RIFF")) && len(data) >= 12 && string(data[8:12]) == "WAVE":
		return formatWAV
	case bytes.HasPrefix(data, []byte("OggS")):
		return formatVorbis
	case bytes.HasPrefix(data, []byte("ID3")), len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return formatMP3
	}
	return ""
}

func decode(kind string, f memFile) (beep.StreamSeekCloser, beep.Format, error) {
	switch kind {
	case formatMP3:
		return mp3.Decode(f)
	case formatFLAC:
		// Some taggers prepend ID3v2 to FLAC files.
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(f)
	case formatWAV:
		return wav.Decode(f)
	case formatVorbis:
		return vorbis.Decode(f)
	}
	return nil, beep.Format{}, ErrUnsupportedFormat
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of r.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
