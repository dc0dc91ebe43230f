package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	userAgent        = "sangeetx-player/1.0"
	maxResponseBytes = 16 << 20
)

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Error describes a failed request to the API. Retryable is set for
// transport failures and 5xx responses, where showing a retry action makes
// sense.
type Error struct {
	Op        string
	Status    int
	Message   string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s: %s (%d)", e.Op, e.Message, e.Status)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsRetryable reports whether err is an API error worth retrying.
func IsRetryable(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Retryable
}

// envelope is the response wrapper used by the song endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// Client is a SangeetX API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets a bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a new API client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Songs lists the catalog.
func (c *Client) Songs(ctx context.Context) ([]Song, error) {
	var songs []Song
	if err := c.do(ctx, "list songs", http.MethodGet, "/songs", nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Song fetches a single song by ID.
func (c *Client) Song(ctx context.Context, id string) (*Song, error) {
	var song Song
	if err := c.do(ctx, "get song", http.MethodGet, "/songs/"+url.PathEscape(id), nil, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// Search searches songs by free text.
func (c *Client) Search(ctx context.Context, query string) ([]Song, error) {
	params := url.Values{}
	params.Set("q", query)
	var songs []Song
	if err := c.do(ctx, "search songs", http.MethodGet, "/songs/search?"+params.Encode(), nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// SetLiked persists the liked flag of a song.
func (c *Client) SetLiked(ctx context.Context, songID string, liked bool) error {
	body := map[string]bool{"liked": liked}
	return c.do(ctx, "update like", http.MethodPost, "/songs/"+url.PathEscape(songID)+"/like", body, nil)
}

// RecordPlay increments the play count of a song.
func (c *Client) RecordPlay(ctx context.Context, songID string) error {
	return c.do(ctx, "record play", http.MethodPost, "/songs/"+url.PathEscape(songID)+"/play", nil, nil)
}

// Subtitles fetches the subtitle lines of a song for a language.
func (c *Client) Subtitles(ctx context.Context, songID, language string) ([]Subtitle, error) {
	params := url.Values{}
	params.Set("songId", songID)
	if language != "" {
		params.Set("language", language)
	}
	var subs []Subtitle
	if err := c.do(ctx, "get subtitles", http.MethodGet, "/subtitles?"+params.Encode(), nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithFields(log.Fields{"op": op, "path": path}).Debugf("request failed: %v", err)
		return &Error{Op: op, Retryable: true, Err: fmt.Errorf("http request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &Error{Op: op, Status: resp.StatusCode, Err: ErrNotFound}
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	var env envelope
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = json.Unmarshal(raw, &env)
		return &Error{
			Op:        op,
			Status:    resp.StatusCode,
			Message:   env.Error,
			Retryable: resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests,
		}
	}
	if readErr != nil {
		return &Error{Op: op, Status: resp.StatusCode, Retryable: true, Err: fmt.Errorf("read response: %w", readErr)}
	}

	// The subtitles endpoint replies with a bare array.
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(trimmed, out); err != nil {
			return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request unsuccessful"
		}
		return &Error{Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}
