package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconCache_FetchesOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	c := &IconCache{Dir: filepath.Join(t.TempDir(), "icons"), Client: srv.Client()}
	u := srv.URL + "/covers/s1.png"

	p1, err := c.Path(context.Background(), u)
	require.NoError(t, err)
	p2, err := c.Path(context.Background(), u)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, ".png", filepath.Ext(p1))
	assert.Equal(t, int32(1), hits.Load())
	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestIconCache_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := &IconCache{Dir: t.TempDir(), Client: srv.Client()}
	_, err := c.Path(context.Background(), srv.URL+"/missing.jpg")
	assert.Error(t, err)
}

func TestIconCache_EmptyURL(t *testing.T) {
	c := &IconCache{Dir: t.TempDir()}
	_, err := c.Path(context.Background(), "")
	assert.Error(t, err)
}

func TestIconName(t *testing.T) {
	assert.Equal(t, iconName("https://a/x.jpg"), iconName("https://a/x.jpg"))
	assert.NotEqual(t, iconName("https://a/x.jpg"), iconName("https://a/y.jpg"))
	assert.Equal(t, ".img", filepath.Ext(iconName("https://a/cover")))
}
