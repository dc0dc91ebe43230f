package settings

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	d, err := OpenPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return map[string]Store{"memory": NewMemory(), "sqlite": d}
}

func TestStore_GetSet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := s.Get(KeyLanguage)
			assert.False(t, ok)

			require.NoError(t, s.Set(KeyLanguage, "hi"))
			require.NoError(t, s.Set(KeyLanguage, "en"))
			v, ok := s.Get(KeyLanguage)
			assert.True(t, ok)
			assert.Equal(t, "en", v)
		})
	}
}

func TestStore_Subscribe(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var got []string
			cancel := s.Subscribe(func(key, value string) {
				got = append(got, key+"="+value)
			})

			require.NoError(t, SetBool(s, KeyAutoplay, false))
			cancel()
			require.NoError(t, SetBool(s, KeyAutoplay, true))

			assert.Equal(t, []string{"autoplay=false"}, got)
		})
	}
}

func TestTypedHelpers(t *testing.T) {
	s := NewMemory()

	assert.True(t, Bool(s, KeyAutoplay, true))
	assert.InDelta(t, 0.8, Float(s, KeyVolume, 0.8), 1e-9)
	assert.Equal(t, "en", String(s, KeyLanguage, "en"))

	require.NoError(t, SetFloat(s, KeyVolume, 0.35))
	assert.InDelta(t, 0.35, Float(s, KeyVolume, 1), 1e-9)

	require.NoError(t, s.Set(KeyMuted, "maybe"))
	assert.False(t, Bool(s, KeyMuted, false), "malformed value falls back to default")
}

func TestAddRecentSearch(t *testing.T) {
	s := NewMemory()

	require.NoError(t, AddRecentSearch(s, "kesariya"))
	require.NoError(t, AddRecentSearch(s, "  tum hi ho "))
	require.NoError(t, AddRecentSearch(s, "Kesariya"))
	require.NoError(t, AddRecentSearch(s, "   "))

	assert.Equal(t, []string{"Kesariya", "tum hi ho"}, RecentSearches(s))
}

func TestAddRecentSearch_Capped(t *testing.T) {
	s := NewMemory()
	for i := range 15 {
		require.NoError(t, AddRecentSearch(s, fmt.Sprintf("q%d", i)))
	}

	got := RecentSearches(s)
	require.Len(t, got, MaxRecentSearches)
	assert.Equal(t, "q14", got[0])
	assert.Equal(t, "q5", got[len(got)-1])
}
