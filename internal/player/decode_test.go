package player

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		src         string
		data        []byte
		want        string
	}{
		{"content type mp3", "audio/mpeg", "https://cdn/x", nil, formatMP3},
		{"content type with params", "audio/flac; charset=binary", "https://cdn/x", nil, formatFLAC},
		{"extension wins over octet-stream", "application/octet-stream", "https://cdn/a/song.ogg?sig=1", nil, formatVorbis},
		{"local wav path", "", "/music/track.WAV", nil, formatWAV},
		{"flac magic", "", "https://cdn/blob", []byte("fLaC\x00\x00"), formatFLAC},
		{"riff wave magic", "", "https://cdn/blob", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), formatWAV},
		{"id3 magic", "", "https://cdn/blob", []byte("ID3\x04"), formatMP3},
		{"mpeg frame sync", "", "https://cdn/blob", []byte{0xFF, 0xFB, 0x90}, formatMP3},
		{"unknown", "text/html", "https://cdn/page", []byte("<html>"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormat(tt.contentType, tt.src, tt.data))
		})
	}
}

func TestSkipID3v2(t *testing.T) {
	t.Run("skips tag", func(t *testing.T) {
		tag := append([]byte("ID3\x04\x00\x00\x00\x00\x00\x05"), []byte("abcde")...)
		r := bytes.NewReader(append(tag, []byte("fLaC")...))
		require.NoError(t, skipID3v2(r))
		rest, _ := io.ReadAll(r)
		assert.Equal(t, "fLaC", string(rest))
	})

	t.Run("rewinds without tag", func(t *testing.T) {
		r := bytes.NewReader([]byte("fLaC0123456789"))
		require.NoError(t, skipID3v2(r))
		rest, _ := io.ReadAll(r)
		assert.Equal(t, "fLaC0123456789", string(rest))
	})

	t.Run("short input", func(t *testing.T) {
		r := bytes.NewReader([]byte("fLaC"))
		require.NoError(t, skipID3v2(r))
		rest, _ := io.ReadAll(r)
		assert.Equal(t, "fLaC", string(rest))
	})
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.mp3" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(bytes.Repeat([]byte{1}, 64))
	}))
	defer srv.Close()

	data, ct, err := fetch(context.Background(), srv.Client(), srv.URL+"/a.mp3", 1024)
	require.NoError(t, err)
	assert.Len(t, data, 64)
	assert.Equal(t, "audio/mpeg", ct)

	_, _, err = fetch(context.Background(), srv.Client(), srv.URL+"/a.mp3", 32)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, _, err = fetch(context.Background(), srv.Client(), srv.URL+"/missing.mp3", 1024)
	assert.Error(t, err)
}

func TestFetchAndDecode_Unsupported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("not audio"))
	}))
	defer srv.Close()

	_, _, err := fetchAndDecode(context.Background(), srv.Client(), srv.URL+"/file", 1024)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
