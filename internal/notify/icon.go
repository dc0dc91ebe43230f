package notify

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

const maxIconBytes = 5 << 20

// IconCache downloads cover art to local files, since notification
// servers only accept a path or an icon name.
type IconCache struct {
	Dir    string
	Client *http.Client
}

// Path returns a local copy of the image at rawURL, fetching it on first use.
func (c *IconCache) Path(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", errors.New("no cover url")
	}
	dest := filepath.Join(c.Dir, iconName(rawURL))
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch cover: %s", resp.Status)
	}

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(c.Dir, "icon-*")
	if err != nil {
		return "", err
	}
	_, err = io.Copy(tmp, io.LimitReader(resp.Body, maxIconBytes))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return dest, nil
}

// iconName derives a stable file name from the URL, keeping its extension.
func iconName(rawURL string) string {
	h := fnv.New64a()
	h.Write([]byte(rawURL))
	ext := ".img"
	if u, err := url.Parse(rawURL); err == nil {
		if e := path.Ext(u.Path); e != "" && len(e) <= 5 {
			ext = e
		}
	}
	return fmt.Sprintf("%x%s", h.Sum64(), ext)
}
