package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"data":    data,
		"error":   errMsg,
	})
}

func TestClient_Songs(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/songs", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, []Song{
			{ID: "a", Title: "Aaj", Duration: 180, AudioURL: "https://cdn/a.mp3"},
			{ID: "b", Title: "Baarish", Duration: 200},
		}, "")
	})

	songs, err := c.Songs(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "Aaj", songs[0].Title)
	assert.True(t, songs[0].Playable())
	assert.False(t, songs[1].Playable())
}

func TestClient_SearchEncodesQuery(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/songs/search", r.URL.Path)
		assert.Equal(t, "tum hi ho", r.URL.Query().Get("q"))
		writeEnvelope(w, http.StatusOK, true, []Song{}, "")
	})

	songs, err := c.Search(context.Background(), "tum hi ho")
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestClient_SetLikedSendsBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/songs/s1/like", r.URL.Path)
		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body["liked"])
		writeEnvelope(w, http.StatusOK, true, nil, "")
	})

	require.NoError(t, c.SetLiked(context.Background(), "s1", true))
}

func TestClient_UnsuccessfulEnvelope(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusOK, false, nil, "song is private")
	})

	_, err := c.Song(context.Background(), "x")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "song is private", apiErr.Message)
	assert.False(t, apiErr.Retryable)
}

func TestClient_ServerErrorIsRetryable(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusBadGateway, false, nil, "upstream down")
	})

	_, err := c.Songs(context.Background())
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
}

func TestClient_NotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Subtitles(context.Background(), "s1", "en")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_SubtitlesBareArray(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subtitles", r.URL.Path)
		assert.Equal(t, "s1", r.URL.Query().Get("songId"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`  [{"startTime":0,"endTime":5,"text":"tum hi ho","language":"en"}]`))
	})

	subs, err := c.Subtitles(context.Background(), "s1", "en")
	require.NoError(t, err)
	assert.Equal(t, []Subtitle{{StartTime: 0, EndTime: 5, Text: "tum hi ho", Language: "en"}}, subs)
}

func TestClient_SubtitlesEnvelope(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusOK, true, []Subtitle{{StartTime: 1, EndTime: 2, Text: "ab"}}, "")
	})

	subs, err := c.Subtitles(context.Background(), "s1", "")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "ab", subs[0].Text)
}

func TestClient_SubtitlesEmptyArray(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	subs, err := c.Subtitles(context.Background(), "s1", "en")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestClient_TransportErrorIsRetryable(t *testing.T) {
	c := New("http://127.0.0.1:1")

	_, err := c.Songs(context.Background())
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
}

func TestClient_TokenHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, true, nil, "")
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("secret"))
	require.NoError(t, c.RecordPlay(context.Background(), "s1"))
}
